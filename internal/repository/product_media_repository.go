package repository

import (
	"errors"

	"github.com/Selinclb/eticaretsitesi/internal/models"

	"gorm.io/gorm"
)

// ProductImageRepository 商品图片数据访问接口
type ProductImageRepository interface {
	ListByProduct(productID uint) ([]models.ProductImage, error)
	GetByID(id uint) (*models.ProductImage, error)
	Create(image *models.ProductImage) error
	Update(image *models.ProductImage) error
	Delete(id uint) error
	ClearPrimary(productID uint, exceptID uint) error
	CountPrimary(productID uint) (int64, error)
	WithTx(tx *gorm.DB) ProductImageRepository
}

// GormProductImageRepository GORM 实现
type GormProductImageRepository struct {
	db *gorm.DB
}

// NewProductImageRepository 创建商品图片仓库
func NewProductImageRepository(db *gorm.DB) *GormProductImageRepository {
	return &GormProductImageRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductImageRepository) WithTx(tx *gorm.DB) ProductImageRepository {
	if tx == nil {
		return r
	}
	return &GormProductImageRepository{db: tx}
}

// ListByProduct 商品图片列表
func (r *GormProductImageRepository) ListByProduct(productID uint) ([]models.ProductImage, error) {
	var images []models.ProductImage
	if err := r.db.Where("product_id = ?", productID).Order("sort_order ASC, id ASC").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// GetByID 根据 ID 获取图片
func (r *GormProductImageRepository) GetByID(id uint) (*models.ProductImage, error) {
	var image models.ProductImage
	if err := r.db.First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

// Create 创建图片
func (r *GormProductImageRepository) Create(image *models.ProductImage) error {
	return r.db.Create(image).Error
}

// Update 更新图片
func (r *GormProductImageRepository) Update(image *models.ProductImage) error {
	return r.db.Save(image).Error
}

// Delete 删除图片
func (r *GormProductImageRepository) Delete(id uint) error {
	return r.db.Delete(&models.ProductImage{}, id).Error
}

// ClearPrimary 取消同一商品下其他图片的主图标记
func (r *GormProductImageRepository) ClearPrimary(productID uint, exceptID uint) error {
	query := r.db.Model(&models.ProductImage{}).Where("product_id = ? AND is_primary = ?", productID, true)
	if exceptID != 0 {
		query = query.Where("id != ?", exceptID)
	}
	return query.Update("is_primary", false).Error
}

// CountPrimary 统计主图数量
func (r *GormProductImageRepository) CountPrimary(productID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ProductImage{}).Where("product_id = ? AND is_primary = ?", productID, true).Count(&count).Error
	return count, err
}

// ProductVariantRepository 商品规格数据访问接口
type ProductVariantRepository interface {
	ListByProduct(productID uint) ([]models.ProductVariant, error)
	ListByProductAndIDs(productID uint, ids []uint) ([]models.ProductVariant, error)
	GetByID(id uint) (*models.ProductVariant, error)
	Create(variant *models.ProductVariant) error
	Update(variant *models.ProductVariant) error
	Delete(id uint) error
	ClearDefault(productID uint, variantType string, exceptID uint) error
	CountByName(productID uint, variantType, name string, excludeID *uint) (int64, error)
	WithTx(tx *gorm.DB) ProductVariantRepository
}

// GormProductVariantRepository GORM 实现
type GormProductVariantRepository struct {
	db *gorm.DB
}

// NewProductVariantRepository 创建商品规格仓库
func NewProductVariantRepository(db *gorm.DB) *GormProductVariantRepository {
	return &GormProductVariantRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductVariantRepository) WithTx(tx *gorm.DB) ProductVariantRepository {
	if tx == nil {
		return r
	}
	return &GormProductVariantRepository{db: tx}
}

// ListByProduct 商品规格列表
func (r *GormProductVariantRepository) ListByProduct(productID uint) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	if err := r.db.Where("product_id = ?", productID).Order("variant_type ASC, name ASC").Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// ListByProductAndIDs 获取商品下指定 ID 的规格
func (r *GormProductVariantRepository) ListByProductAndIDs(productID uint, ids []uint) ([]models.ProductVariant, error) {
	if len(ids) == 0 {
		return []models.ProductVariant{}, nil
	}
	var variants []models.ProductVariant
	if err := r.db.Where("product_id = ? AND id IN ?", productID, ids).Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// GetByID 根据 ID 获取规格
func (r *GormProductVariantRepository) GetByID(id uint) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.db.First(&variant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

// Create 创建规格
func (r *GormProductVariantRepository) Create(variant *models.ProductVariant) error {
	return r.db.Create(variant).Error
}

// Update 更新规格
func (r *GormProductVariantRepository) Update(variant *models.ProductVariant) error {
	return r.db.Save(variant).Error
}

// Delete 删除规格
func (r *GormProductVariantRepository) Delete(id uint) error {
	return r.db.Delete(&models.ProductVariant{}, id).Error
}

// ClearDefault 取消同一商品同一规格类型下其他选项的默认标记
func (r *GormProductVariantRepository) ClearDefault(productID uint, variantType string, exceptID uint) error {
	query := r.db.Model(&models.ProductVariant{}).
		Where("product_id = ? AND variant_type = ? AND is_default = ?", productID, variantType, true)
	if exceptID != 0 {
		query = query.Where("id != ?", exceptID)
	}
	return query.Update("is_default", false).Error
}

// CountByName 统计同商品同类型下的同名规格
func (r *GormProductVariantRepository) CountByName(productID uint, variantType, name string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.ProductVariant{}).
		Where("product_id = ? AND variant_type = ? AND name = ?", productID, variantType, name)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	err := query.Count(&count).Error
	return count, err
}
