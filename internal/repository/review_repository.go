package repository

import (
	"errors"

	"github.com/Selinclb/eticaretsitesi/internal/models"

	"gorm.io/gorm"
)

// RatingSummary 评分汇总
type RatingSummary struct {
	Average float64
	Count   int64
}

// ReviewRepository 评价数据访问接口
type ReviewRepository interface {
	List(filter ReviewListFilter) ([]models.Review, int64, error)
	GetByID(id uint) (*models.Review, error)
	ExistsByProductAndUser(productID, userID uint) (bool, error)
	Create(review *models.Review) error
	Update(review *models.Review) error
	Delete(id uint) error
	ApprovedSummary(productID uint) (RatingSummary, error)
}

// GormReviewRepository GORM 实现
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓库
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// List 评价列表
func (r *GormReviewRepository) List(filter ReviewListFilter) ([]models.Review, int64, error) {
	query := r.db.Model(&models.Review{})
	if filter.ProductID != 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.IsApproved != nil {
		query = query.Where("is_approved = ?", *filter.IsApproved)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var reviews []models.Review
	if err := query.Preload("User").Order("created_at DESC, id DESC").Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// GetByID 根据 ID 获取评价
func (r *GormReviewRepository) GetByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.Preload("User").First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// ExistsByProductAndUser 用户是否已评价该商品
func (r *GormReviewRepository) ExistsByProductAndUser(productID, userID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Review{}).Where("product_id = ? AND user_id = ?", productID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建评价
func (r *GormReviewRepository) Create(review *models.Review) error {
	return r.db.Omit("User").Create(review).Error
}

// Update 更新评价
func (r *GormReviewRepository) Update(review *models.Review) error {
	return r.db.Omit("User").Save(review).Error
}

// Delete 删除评价
func (r *GormReviewRepository) Delete(id uint) error {
	return r.db.Delete(&models.Review{}, id).Error
}

// ApprovedSummary 已审核评价的平均分与数量
func (r *GormReviewRepository) ApprovedSummary(productID uint) (RatingSummary, error) {
	var row struct {
		Average *float64
		Count   int64
	}
	err := r.db.Model(&models.Review{}).
		Select("AVG(rating) AS average, COUNT(*) AS count").
		Where("product_id = ? AND is_approved = ?", productID, true).
		Scan(&row).Error
	if err != nil {
		return RatingSummary{}, err
	}
	summary := RatingSummary{Count: row.Count}
	if row.Average != nil {
		summary.Average = *row.Average
	}
	return summary, nil
}
