package repository

import (
	"errors"

	"github.com/Selinclb/eticaretsitesi/internal/models"

	"gorm.io/gorm"
)

// SliderRepository 轮播图数据访问接口
type SliderRepository interface {
	List(onlyActive bool) ([]models.Slider, error)
	GetByID(id uint) (*models.Slider, error)
	Create(slider *models.Slider) error
	Update(slider *models.Slider) error
	Delete(id uint) error
}

// GormSliderRepository GORM 实现
type GormSliderRepository struct {
	db *gorm.DB
}

// NewSliderRepository 创建轮播图仓库
func NewSliderRepository(db *gorm.DB) *GormSliderRepository {
	return &GormSliderRepository{db: db}
}

// List 轮播图列表（按排序升序）
func (r *GormSliderRepository) List(onlyActive bool) ([]models.Slider, error) {
	query := r.db.Model(&models.Slider{})
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var sliders []models.Slider
	if err := query.Order("sort_order ASC, id ASC").Find(&sliders).Error; err != nil {
		return nil, err
	}
	return sliders, nil
}

// GetByID 根据 ID 获取轮播图
func (r *GormSliderRepository) GetByID(id uint) (*models.Slider, error) {
	var slider models.Slider
	if err := r.db.First(&slider, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slider, nil
}

// Create 创建轮播图
func (r *GormSliderRepository) Create(slider *models.Slider) error {
	return r.db.Create(slider).Error
}

// Update 更新轮播图
func (r *GormSliderRepository) Update(slider *models.Slider) error {
	return r.db.Save(slider).Error
}

// Delete 删除轮播图
func (r *GormSliderRepository) Delete(id uint) error {
	return r.db.Delete(&models.Slider{}, id).Error
}
