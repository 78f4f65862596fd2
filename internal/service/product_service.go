package service

import (
	"math"
	"strings"
	"time"

	"github.com/Selinclb/eticaretsitesi/internal/constants"
	"github.com/Selinclb/eticaretsitesi/internal/models"
	"github.com/Selinclb/eticaretsitesi/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const relatedProductLimit = 4

// ProductService 商品业务服务
type ProductService struct {
	repo        repository.ProductRepository
	imageRepo   repository.ProductImageRepository
	variantRepo repository.ProductVariantRepository
	reviewRepo  repository.ReviewRepository
	categories  *CategoryService
}

// NewProductService 创建商品服务
func NewProductService(
	repo repository.ProductRepository,
	imageRepo repository.ProductImageRepository,
	variantRepo repository.ProductVariantRepository,
	reviewRepo repository.ReviewRepository,
	categories *CategoryService,
) *ProductService {
	return &ProductService{
		repo:        repo,
		imageRepo:   imageRepo,
		variantRepo: variantRepo,
		reviewRepo:  reviewRepo,
		categories:  categories,
	}
}

// ProductInput 创建/更新商品输入
type ProductInput struct {
	CategoryID      uint
	SubCategoryID   uint
	Name            string
	Slug            string
	Description     string
	Price           decimal.Decimal
	DiscountedPrice *decimal.Decimal
	Specs           map[string]interface{}
	Stock           int
	Status          string
	IsBestSeller    bool
	IsFeatured      bool
}

// ProductDetail 商品详情（含推荐、评价汇总）
type ProductDetail struct {
	Product       *models.Product
	Related       []models.Product
	Reviews       []models.Review
	AverageRating *float64
	ReviewCount   int64
}

// VariantTypeValue 规格选项
type VariantTypeValue struct {
	ID              uint         `json:"id"`
	Name            string       `json:"name"`
	PriceAdjustment models.Money `json:"price_adjustment"`
	IsDefault       bool         `json:"is_default"`
}

// VariantTypeGroup 按类型分组的规格
type VariantTypeGroup struct {
	Type        string             `json:"type"`
	DisplayName string             `json:"display_name"`
	Values      []VariantTypeValue `json:"values"`
}

// StockCheckResult 库存检查结果
type StockCheckResult struct {
	Available bool `json:"available"`
	Stock     int  `json:"stock"`
}

// ListPublic 获取前台商品列表（仅上架）
func (s *ProductService) ListPublic(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.OnlyActive = true
	filter.WithRelations = true
	return s.repo.List(filter)
}

// ListAdmin 获取后台商品列表
func (s *ProductService) ListAdmin(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.WithRelations = true
	return s.repo.List(filter)
}

// GetPublicBySlug 获取前台商品
func (s *ProductService) GetPublicBySlug(slug string) (*models.Product, error) {
	product, err := s.repo.GetBySlug(strings.TrimSpace(slug), true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetDetail 商品详情，附带同分类推荐与已审核评价
func (s *ProductService) GetDetail(slug string) (*ProductDetail, error) {
	product, err := s.GetPublicBySlug(slug)
	if err != nil {
		return nil, err
	}
	related, err := s.repo.ListRelated(product.CategoryID, product.ID, relatedProductLimit)
	if err != nil {
		return nil, err
	}
	approved := true
	reviews, _, err := s.reviewRepo.List(repository.ReviewListFilter{ProductID: product.ID, IsApproved: &approved})
	if err != nil {
		return nil, err
	}
	summary, err := s.reviewRepo.ApprovedSummary(product.ID)
	if err != nil {
		return nil, err
	}
	detail := &ProductDetail{
		Product:     product,
		Related:     related,
		Reviews:     reviews,
		ReviewCount: summary.Count,
	}
	if summary.Count > 0 {
		avg := math.Round(summary.Average*10) / 10
		detail.AverageRating = &avg
	}
	return detail, nil
}

// GroupVariantTypes 按规格类型分组
func GroupVariantTypes(variants []models.ProductVariant) []VariantTypeGroup {
	groups := make([]VariantTypeGroup, 0)
	index := make(map[string]int)
	for _, variant := range variants {
		pos, ok := index[variant.VariantType]
		if !ok {
			pos = len(groups)
			index[variant.VariantType] = pos
			groups = append(groups, VariantTypeGroup{
				Type:        variant.VariantType,
				DisplayName: variant.VariantTypeDisplay(),
				Values:      []VariantTypeValue{},
			})
		}
		groups[pos].Values = append(groups[pos].Values, VariantTypeValue{
			ID:              variant.ID,
			Name:            variant.Name,
			PriceAdjustment: variant.PriceAdjustment,
			IsDefault:       variant.IsDefault,
		})
	}
	return groups
}

// ListVariants 前台商品规格
func (s *ProductService) ListVariants(slug string) (*models.Product, []models.ProductVariant, error) {
	product, err := s.GetPublicBySlug(slug)
	if err != nil {
		return nil, nil, err
	}
	variants, err := s.variantRepo.ListByProduct(product.ID)
	if err != nil {
		return nil, nil, err
	}
	return product, variants, nil
}

// CheckStock 取所选规格中的最小库存，未选规格时取商品库存
func (s *ProductService) CheckStock(slug string, variantIDs []uint) (*StockCheckResult, error) {
	product, err := s.GetPublicBySlug(slug)
	if err != nil {
		return nil, err
	}
	variants, err := s.variantRepo.ListByProductAndIDs(product.ID, variantIDs)
	if err != nil {
		return nil, err
	}
	if len(variants) == 0 {
		return &StockCheckResult{Available: product.Stock > 0, Stock: product.Stock}, nil
	}
	minStock := variants[0].Stock
	for _, variant := range variants[1:] {
		if variant.Stock < minStock {
			minStock = variant.Stock
		}
	}
	return &StockCheckResult{Available: minStock > 0, Stock: minStock}, nil
}

// GetAdminByID 后台商品详情
func (s *ProductService) GetAdminByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	product := &models.Product{}
	if err := s.applyInput(product, input, nil); err != nil {
		return nil, err
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return s.GetAdminByID(product.ID)
}

// Update 更新商品
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.GetAdminByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.applyInput(product, input, &id); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return s.GetAdminByID(id)
}

// Delete 删除商品
func (s *ProductService) Delete(id uint) error {
	if _, err := s.GetAdminByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *ProductService) applyInput(product *models.Product, input ProductInput, excludeID *uint) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ErrProductNameRequired
	}
	if input.Price.IsNegative() {
		return ErrProductPriceInvalid
	}
	if input.DiscountedPrice != nil && input.DiscountedPrice.IsNegative() {
		return ErrProductPriceInvalid
	}
	if input.Stock < 0 {
		return ErrProductStockInvalid
	}
	status := strings.ToLower(strings.TrimSpace(input.Status))
	if status == "" {
		status = constants.ProductStatusActive
	}
	if status != constants.ProductStatusActive && status != constants.ProductStatusInactive {
		return ErrProductStatus
	}

	sub, err := s.categories.subRepo.GetByID(input.SubCategoryID)
	if err != nil {
		return err
	}
	if sub == nil {
		return ErrSubCategoryNotFound
	}
	if input.CategoryID == 0 {
		input.CategoryID = sub.CategoryID
	}
	if err := s.categories.ensureCategory(input.CategoryID); err != nil {
		return err
	}
	if sub.CategoryID != input.CategoryID {
		return ErrSubCategoryMismatch
	}

	slug, err := resolveSlug(input.Slug, name, excludeID, s.repo.CountBySlug)
	if err != nil {
		return err
	}

	product.CategoryID = input.CategoryID
	product.SubCategoryID = input.SubCategoryID
	product.Name = name
	product.Slug = slug
	product.Description = input.Description
	product.Price = models.NewMoneyFromDecimal(input.Price)
	product.DiscountedPrice = nil
	if input.DiscountedPrice != nil {
		discounted := models.NewMoneyFromDecimal(*input.DiscountedPrice)
		product.DiscountedPrice = &discounted
	}
	product.SpecsJSON = models.JSON(input.Specs)
	product.Stock = input.Stock
	product.Status = status
	product.IsBestSeller = input.IsBestSeller
	product.IsFeatured = input.IsFeatured
	product.Category = nil
	product.SubCategory = nil
	product.NormalizeSale()
	return nil
}

// ProductImageInput 商品图片输入
type ProductImageInput struct {
	Image     string
	IsPrimary bool
	SortOrder int
}

// AddImage 添加商品图片，主图唯一
func (s *ProductService) AddImage(productID uint, input ProductImageInput) (*models.ProductImage, error) {
	if _, err := s.GetAdminByID(productID); err != nil {
		return nil, err
	}
	imagePath := strings.TrimSpace(input.Image)
	if imagePath == "" {
		return nil, ErrImageRequired
	}
	image := &models.ProductImage{
		ProductID: productID,
		Image:     imagePath,
		IsPrimary: input.IsPrimary,
		SortOrder: input.SortOrder,
		CreatedAt: time.Now(),
	}
	err := s.repo.Transaction(func(tx *gorm.DB) error {
		repo := s.imageRepo.WithTx(tx)
		if err := repo.Create(image); err != nil {
			return err
		}
		if image.IsPrimary {
			return repo.ClearPrimary(productID, image.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return image, nil
}

// UpdateImage 更新商品图片
func (s *ProductService) UpdateImage(imageID uint, input ProductImageInput) (*models.ProductImage, error) {
	image, err := s.imageRepo.GetByID(imageID)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, ErrImageNotFound
	}
	if path := strings.TrimSpace(input.Image); path != "" {
		image.Image = path
	}
	image.IsPrimary = input.IsPrimary
	image.SortOrder = input.SortOrder
	err = s.repo.Transaction(func(tx *gorm.DB) error {
		repo := s.imageRepo.WithTx(tx)
		if err := repo.Update(image); err != nil {
			return err
		}
		if image.IsPrimary {
			return repo.ClearPrimary(image.ProductID, image.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return image, nil
}

// DeleteImage 删除商品图片
func (s *ProductService) DeleteImage(imageID uint) error {
	image, err := s.imageRepo.GetByID(imageID)
	if err != nil {
		return err
	}
	if image == nil {
		return ErrImageNotFound
	}
	return s.imageRepo.Delete(imageID)
}

// ProductVariantInput 商品规格输入
type ProductVariantInput struct {
	VariantType     string
	Name            string
	SKU             string
	Stock           int
	PriceAdjustment decimal.Decimal
	IsDefault       bool
}

// AddVariant 添加商品规格，同类型下默认选项唯一
func (s *ProductService) AddVariant(productID uint, input ProductVariantInput) (*models.ProductVariant, error) {
	if _, err := s.GetAdminByID(productID); err != nil {
		return nil, err
	}
	variant := &models.ProductVariant{ProductID: productID, CreatedAt: time.Now()}
	if err := s.applyVariantInput(variant, input, nil); err != nil {
		return nil, err
	}
	if err := s.saveVariant(variant, true); err != nil {
		return nil, err
	}
	return variant, nil
}

// UpdateVariant 更新商品规格
func (s *ProductService) UpdateVariant(variantID uint, input ProductVariantInput) (*models.ProductVariant, error) {
	variant, err := s.variantRepo.GetByID(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrVariantNotFound
	}
	if err := s.applyVariantInput(variant, input, &variantID); err != nil {
		return nil, err
	}
	if err := s.saveVariant(variant, false); err != nil {
		return nil, err
	}
	return variant, nil
}

// DeleteVariant 删除商品规格
func (s *ProductService) DeleteVariant(variantID uint) error {
	variant, err := s.variantRepo.GetByID(variantID)
	if err != nil {
		return err
	}
	if variant == nil {
		return ErrVariantNotFound
	}
	return s.variantRepo.Delete(variantID)
}

func (s *ProductService) applyVariantInput(variant *models.ProductVariant, input ProductVariantInput, excludeID *uint) error {
	variantType := strings.ToLower(strings.TrimSpace(input.VariantType))
	if _, ok := constants.VariantTypeDisplay[variantType]; !ok {
		return ErrVariantTypeInvalid
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ErrNameRequired
	}
	if input.Stock < 0 {
		return ErrProductStockInvalid
	}
	count, err := s.variantRepo.CountByName(variant.ProductID, variantType, name, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrVariantExists
	}
	variant.VariantType = variantType
	variant.Name = name
	variant.SKU = strings.TrimSpace(input.SKU)
	variant.Stock = input.Stock
	variant.PriceAdjustment = models.NewMoneyFromDecimal(input.PriceAdjustment)
	variant.IsDefault = input.IsDefault
	return nil
}

func (s *ProductService) saveVariant(variant *models.ProductVariant, create bool) error {
	return s.repo.Transaction(func(tx *gorm.DB) error {
		repo := s.variantRepo.WithTx(tx)
		var err error
		if create {
			err = repo.Create(variant)
		} else {
			err = repo.Update(variant)
		}
		if err != nil {
			return err
		}
		if variant.IsDefault {
			return repo.ClearDefault(variant.ProductID, variant.VariantType, variant.ID)
		}
		return nil
	})
}
