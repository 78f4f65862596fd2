package service

import (
	"strings"
	"time"

	"github.com/Selinclb/eticaretsitesi/internal/models"
	"github.com/Selinclb/eticaretsitesi/internal/repository"
)

// CategoryService 分类业务服务
type CategoryService struct {
	repo    repository.CategoryRepository
	subRepo repository.SubCategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository, subRepo repository.SubCategoryRepository) *CategoryService {
	return &CategoryService{repo: repo, subRepo: subRepo}
}

// CategoryInput 创建/更新分类输入
type CategoryInput struct {
	Name      string
	Slug      string
	SortOrder int
}

// SubCategoryInput 创建/更新子分类输入
type SubCategoryInput struct {
	CategoryID uint
	Name       string
	Slug       string
	Image      string
}

// List 获取分类列表（含子分类）
func (s *CategoryService) List() ([]models.Category, error) {
	return s.repo.List()
}

// GetBySlug 获取分类详情
func (s *CategoryService) GetBySlug(slug string) (*models.Category, error) {
	category, err := s.repo.GetBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// ListSubCategories 子分类列表，可按分类 slug 过滤
func (s *CategoryService) ListSubCategories(categorySlug string) ([]models.SubCategory, error) {
	return s.subRepo.List(repository.SubCategoryListFilter{CategorySlug: strings.TrimSpace(categorySlug)})
}

// ListSubCategoriesOf 指定分类的子分类，分类不存在时返回错误
func (s *CategoryService) ListSubCategoriesOf(categorySlug string) ([]models.SubCategory, error) {
	category, err := s.GetBySlug(categorySlug)
	if err != nil {
		return nil, err
	}
	return s.subRepo.List(repository.SubCategoryListFilter{CategoryID: category.ID})
}

// GetSubCategoryBySlug 获取子分类详情
func (s *CategoryService) GetSubCategoryBySlug(slug string) (*models.SubCategory, error) {
	sub, err := s.subRepo.GetBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubCategoryNotFound
	}
	return sub, nil
}

// Create 创建分类
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	slug, err := resolveSlug(input.Slug, name, nil, s.repo.CountBySlug)
	if err != nil {
		return nil, err
	}
	category := models.Category{
		Name:      name,
		Slug:      slug,
		SortOrder: input.SortOrder,
	}
	if err := s.repo.Create(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Update 更新分类
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	slug, err := resolveSlug(input.Slug, name, &id, s.repo.CountBySlug)
	if err != nil {
		return nil, err
	}

	category.Name = name
	category.Slug = slug
	category.SortOrder = input.SortOrder
	category.UpdatedAt = time.Now()
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 删除分类，仍有商品时拒绝
func (s *CategoryService) Delete(id uint) error {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	count, err := s.repo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.repo.Delete(id)
}

// CreateSubCategory 创建子分类
func (s *CategoryService) CreateSubCategory(input SubCategoryInput) (*models.SubCategory, error) {
	if err := s.ensureCategory(input.CategoryID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	slug, err := resolveSlug(input.Slug, name, nil, s.subRepo.CountBySlug)
	if err != nil {
		return nil, err
	}
	sub := models.SubCategory{
		CategoryID: input.CategoryID,
		Name:       name,
		Slug:       slug,
		Image:      strings.TrimSpace(input.Image),
	}
	if err := s.subRepo.Create(&sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// UpdateSubCategory 更新子分类
func (s *CategoryService) UpdateSubCategory(id uint, input SubCategoryInput) (*models.SubCategory, error) {
	sub, err := s.subRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubCategoryNotFound
	}
	if err := s.ensureCategory(input.CategoryID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	slug, err := resolveSlug(input.Slug, name, &id, s.subRepo.CountBySlug)
	if err != nil {
		return nil, err
	}

	sub.CategoryID = input.CategoryID
	sub.Name = name
	sub.Slug = slug
	sub.Image = strings.TrimSpace(input.Image)
	sub.UpdatedAt = time.Now()
	if err := s.subRepo.Update(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// DeleteSubCategory 删除子分类，仍有商品时拒绝
func (s *CategoryService) DeleteSubCategory(id uint) error {
	sub, err := s.subRepo.GetByID(id)
	if err != nil {
		return err
	}
	if sub == nil {
		return ErrSubCategoryNotFound
	}
	count, err := s.subRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSubCategoryInUse
	}
	return s.subRepo.Delete(id)
}

func (s *CategoryService) ensureCategory(id uint) error {
	if id == 0 {
		return ErrCategoryNotFound
	}
	category, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return nil
}

// resolveSlug 显式 slug 冲突时报错，留空时按名称生成唯一 slug
func resolveSlug(raw, name string, excludeID *uint, count func(slug string, excludeID *uint) (int64, error)) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return UniqueSlug(name, func(slug string) (int64, error) {
			return count(slug, excludeID)
		})
	}
	slug, err := NormalizeSlug(raw)
	if err != nil {
		return "", err
	}
	n, err := count(slug, excludeID)
	if err != nil {
		return "", err
	}
	if n > 0 {
		return "", ErrSlugExists
	}
	return slug, nil
}
