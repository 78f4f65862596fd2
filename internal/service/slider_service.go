package service

import (
	"strings"
	"time"

	"github.com/Selinclb/eticaretsitesi/internal/models"
	"github.com/Selinclb/eticaretsitesi/internal/repository"
)

const defaultSliderButtonText = "İncele"

// SliderService 轮播图服务
type SliderService struct {
	repo repository.SliderRepository
}

// NewSliderService 创建轮播图服务
func NewSliderService(repo repository.SliderRepository) *SliderService {
	return &SliderService{repo: repo}
}

// SliderInput 轮播图输入
type SliderInput struct {
	Title       string
	Description string
	Image       string
	URL         string
	ButtonText  string
	SortOrder   int
	IsActive    bool
}

// ListActive 前台启用的轮播图
func (s *SliderService) ListActive() ([]models.Slider, error) {
	return s.repo.List(true)
}

// ListAll 后台轮播图列表
func (s *SliderService) ListAll() ([]models.Slider, error) {
	return s.repo.List(false)
}

// Create 创建轮播图
func (s *SliderService) Create(input SliderInput) (*models.Slider, error) {
	slider := &models.Slider{CreatedAt: time.Now()}
	if err := applySliderInput(slider, input); err != nil {
		return nil, err
	}
	slider.UpdatedAt = slider.CreatedAt
	if err := s.repo.Create(slider); err != nil {
		return nil, err
	}
	return slider, nil
}

// Update 更新轮播图
func (s *SliderService) Update(id uint, input SliderInput) (*models.Slider, error) {
	slider, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if slider == nil {
		return nil, ErrSliderNotFound
	}
	if err := applySliderInput(slider, input); err != nil {
		return nil, err
	}
	slider.UpdatedAt = time.Now()
	if err := s.repo.Update(slider); err != nil {
		return nil, err
	}
	return slider, nil
}

// Delete 删除轮播图
func (s *SliderService) Delete(id uint) error {
	slider, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if slider == nil {
		return ErrSliderNotFound
	}
	return s.repo.Delete(id)
}

func applySliderInput(slider *models.Slider, input SliderInput) error {
	image := strings.TrimSpace(input.Image)
	if image == "" {
		return ErrImageRequired
	}
	url := strings.TrimSpace(input.URL)
	if url == "" {
		return ErrInvalidInput
	}
	buttonText := strings.TrimSpace(input.ButtonText)
	if buttonText == "" {
		buttonText = defaultSliderButtonText
	}
	slider.Title = strings.TrimSpace(input.Title)
	slider.Description = strings.TrimSpace(input.Description)
	slider.Image = image
	slider.URL = url
	slider.ButtonText = buttonText
	slider.SortOrder = input.SortOrder
	slider.IsActive = input.IsActive
	return nil
}
