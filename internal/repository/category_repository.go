package repository

import (
	"errors"

	"github.com/Selinclb/eticaretsitesi/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository 分类数据访问接口
type CategoryRepository interface {
	List() ([]models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	GetByID(id uint) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
	CountProducts(categoryID uint) (int64, error)
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// List 分类列表（含子分类）
func (r *GormCategoryRepository) List() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Preload("SubCategories", func(db *gorm.DB) *gorm.DB {
		return db.Order("name ASC")
	}).Order("sort_order DESC, name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// GetBySlug 根据 slug 获取分类
func (r *GormCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.Preload("SubCategories", func(db *gorm.DB) *gorm.DB {
		return db.Order("name ASC")
	}).Where("slug = ?", slug).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// GetByID 根据 ID 获取分类
func (r *GormCategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// Create 创建分类
func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// Update 更新分类
func (r *GormCategoryRepository) Update(category *models.Category) error {
	return r.db.Omit("SubCategories").Save(category).Error
}

// Delete 删除分类
func (r *GormCategoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}

// CountBySlug 统计 slug 数量
func (r *GormCategoryRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	return countBySlug(r.db.Model(&models.Category{}), slug, excludeID)
}

// CountProducts 统计某分类下商品数
func (r *GormCategoryRepository) CountProducts(categoryID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SubCategoryRepository 子分类数据访问接口
type SubCategoryRepository interface {
	List(filter SubCategoryListFilter) ([]models.SubCategory, error)
	GetBySlug(slug string) (*models.SubCategory, error)
	GetByID(id uint) (*models.SubCategory, error)
	Create(sub *models.SubCategory) error
	Update(sub *models.SubCategory) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
	CountProducts(subCategoryID uint) (int64, error)
}

// GormSubCategoryRepository GORM 实现
type GormSubCategoryRepository struct {
	db *gorm.DB
}

// NewSubCategoryRepository 创建子分类仓库
func NewSubCategoryRepository(db *gorm.DB) *GormSubCategoryRepository {
	return &GormSubCategoryRepository{db: db}
}

// List 子分类列表
func (r *GormSubCategoryRepository) List(filter SubCategoryListFilter) ([]models.SubCategory, error) {
	query := r.db.Model(&models.SubCategory{}).Preload("Category")
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.CategorySlug != "" {
		query = query.Where("category_id IN (?)",
			r.db.Model(&models.Category{}).Select("id").Where("slug = ?", filter.CategorySlug))
	}
	var subs []models.SubCategory
	if err := query.Order("name ASC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// GetBySlug 根据 slug 获取子分类
func (r *GormSubCategoryRepository) GetBySlug(slug string) (*models.SubCategory, error) {
	var sub models.SubCategory
	if err := r.db.Preload("Category").Where("slug = ?", slug).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// GetByID 根据 ID 获取子分类
func (r *GormSubCategoryRepository) GetByID(id uint) (*models.SubCategory, error) {
	var sub models.SubCategory
	if err := r.db.First(&sub, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// Create 创建子分类
func (r *GormSubCategoryRepository) Create(sub *models.SubCategory) error {
	return r.db.Omit("Category").Create(sub).Error
}

// Update 更新子分类
func (r *GormSubCategoryRepository) Update(sub *models.SubCategory) error {
	return r.db.Omit("Category").Save(sub).Error
}

// Delete 删除子分类
func (r *GormSubCategoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.SubCategory{}, id).Error
}

// CountBySlug 统计 slug 数量
func (r *GormSubCategoryRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	return countBySlug(r.db.Model(&models.SubCategory{}), slug, excludeID)
}

// CountProducts 统计子分类下商品数
func (r *GormSubCategoryRepository) CountProducts(subCategoryID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("sub_category_id = ?", subCategoryID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func countBySlug(query *gorm.DB, slug string, excludeID *uint) (int64, error) {
	var count int64
	query = query.Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
