package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Selinclb/eticaretsitesi/internal/http/response"
	"github.com/Selinclb/eticaretsitesi/internal/i18n"
	"github.com/Selinclb/eticaretsitesi/internal/models"
	"github.com/Selinclb/eticaretsitesi/internal/repository"
	"github.com/Selinclb/eticaretsitesi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PublicProductView 前台商品列表项
type PublicProductView struct {
	models.Product
	PrimaryImageURL    string `json:"primary_image_url"`
	DiscountPercentage *int64 `json:"discount_percentage"`
}

// PublicProductDetail 前台商品详情
type PublicProductDetail struct {
	PublicProductView
	VariantTypes    []service.VariantTypeGroup `json:"variant_types"`
	RelatedProducts []PublicProductView        `json:"related_products"`
	Reviews         []PublicReviewView         `json:"reviews"`
	AverageRating   *float64                   `json:"average_rating"`
	ReviewCount     int64                      `json:"review_count"`
}

// PublicReviewView 前台评价
type PublicReviewView struct {
	models.Review
	UserName string `json:"user_name"`
}

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// GetCategory 根据 slug 获取分类
func (h *Handler) GetCategory(c *gin.Context) {
	category, err := h.CategoryService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, response.CodeNotFound, "error.category_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, category)
}

// GetCategorySubCategories 获取分类下的子分类
func (h *Handler) GetCategorySubCategories(c *gin.Context) {
	subs, err := h.CategoryService.ListSubCategoriesOf(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, response.CodeNotFound, "error.category_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, subs)
}

// GetSubCategories 获取子分类列表，可按 category slug 过滤
func (h *Handler) GetSubCategories(c *gin.Context) {
	subs, err := h.CategoryService.ListSubCategories(strings.TrimSpace(c.Query("category")))
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, subs)
}

// GetSubCategory 根据 slug 获取子分类
func (h *Handler) GetSubCategory(c *gin.Context) {
	sub, err := h.CategoryService.GetSubCategoryBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrSubCategoryNotFound) {
			respondError(c, response.CodeNotFound, "error.subcategory_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, sub)
}

// GetProducts 获取商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, pageSize := normalizePagination(c)
	filter, ok := readProductFilter(c)
	if !ok {
		return
	}
	filter.Page = page
	filter.PageSize = pageSize

	products, total, err := h.ProductService.ListPublic(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, decorateProducts(products), pagination)
}

// GetProductBySlug 根据 slug 获取商品详情
func (h *Handler) GetProductBySlug(c *gin.Context) {
	detail, err := h.ProductService.GetDetail(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	reviews := make([]PublicReviewView, 0, len(detail.Reviews))
	for _, review := range detail.Reviews {
		reviews = append(reviews, decorateReview(review))
	}
	response.Success(c, PublicProductDetail{
		PublicProductView: decorateProduct(*detail.Product),
		VariantTypes:      service.GroupVariantTypes(detail.Product.Variants),
		RelatedProducts:   decorateProducts(detail.Related),
		Reviews:           reviews,
		AverageRating:     detail.AverageRating,
		ReviewCount:       detail.ReviewCount,
	})
}

// GetProductVariants 获取商品规格
func (h *Handler) GetProductVariants(c *gin.Context) {
	_, variants, err := h.ProductService.ListVariants(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{
		"variant_types": service.GroupVariantTypes(variants),
		"variants":      variants,
	})
}

// CheckProductStock 检查所选规格库存
func (h *Handler) CheckProductStock(c *gin.Context) {
	variantIDs, err := parseUintList(c.Query("variant_ids"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.variant_ids_invalid", nil)
		return
	}

	result, err := h.ProductService.CheckStock(c.Param("slug"), variantIDs)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.Success(c, result)
}

// GetProductReviews 获取商品已审核评价
func (h *Handler) GetProductReviews(c *gin.Context) {
	page, pageSize := normalizePagination(c)
	reviews, total, err := h.ReviewService.ListApproved(c.Param("slug"), page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.review_fetch_failed", err)
		return
	}

	items := make([]PublicReviewView, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, decorateReview(review))
	}
	response.SuccessWithPage(c, items, response.BuildPagination(page, pageSize, total))
}

// CreateReviewRequest 提交评价请求
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment" binding:"required"`
	Pros    string `json:"pros"`
	Cons    string `json:"cons"`
}

// CreateProductReview 提交商品评价，审核通过前不公开
func (h *Handler) CreateProductReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	review, err := h.ReviewService.Create(c.Param("slug"), service.CreateReviewInput{
		UserID:  uid,
		Rating:  req.Rating,
		Comment: req.Comment,
		Pros:    req.Pros,
		Cons:    req.Cons,
	})
	if err != nil {
		respondWithMappedError(c, err, reviewCreateErrorRules, response.CodeInternal, "error.review_create_failed")
		return
	}
	response.Created(c, i18n.T(i18n.ResolveLocale(c), "review.submitted"), review)
}

// GetSliders 获取启用的轮播图
func (h *Handler) GetSliders(c *gin.Context) {
	sliders, err := h.SliderService.ListActive()
	if err != nil {
		respondError(c, response.CodeInternal, "error.slider_fetch_failed", err)
		return
	}
	response.Success(c, sliders)
}

func readProductFilter(c *gin.Context) (repository.ProductListFilter, bool) {
	filter := repository.ProductListFilter{
		CategorySlug:    strings.TrimSpace(c.Query("category")),
		SubCategorySlug: strings.TrimSpace(c.Query("subcategory")),
		Search:          strings.TrimSpace(c.Query("search")),
		Featured:        queryBool(c, "featured"),
		BestSeller:      queryBool(c, "best_seller"),
		OnSale:          queryBool(c, "on_sale"),
	}
	for _, bound := range []struct {
		name   string
		target **decimal.Decimal
	}{
		{"min_price", &filter.MinPrice},
		{"max_price", &filter.MaxPrice},
	} {
		raw := strings.TrimSpace(c.Query(bound.name))
		if raw == "" {
			continue
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.price_filter_invalid", nil)
			return filter, false
		}
		*bound.target = &value
	}
	return filter, true
}

func queryBool(c *gin.Context, name string) bool {
	switch strings.ToLower(strings.TrimSpace(c.Query(name))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func parseUintList(raw string) ([]uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil || id == 0 {
			return nil, service.ErrInvalidInput
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

func decorateProduct(product models.Product) PublicProductView {
	return PublicProductView{
		Product:            product,
		PrimaryImageURL:    product.PrimaryImageURL(),
		DiscountPercentage: product.DiscountPercentage(),
	}
}

func decorateProducts(products []models.Product) []PublicProductView {
	items := make([]PublicProductView, 0, len(products))
	for _, product := range products {
		items = append(items, decorateProduct(product))
	}
	return items
}

func decorateReview(review models.Review) PublicReviewView {
	view := PublicReviewView{Review: review}
	if review.User != nil {
		view.UserName = reviewerName(review.User)
	}
	return view
}

// reviewerName 名 + 姓首字母，例如 "Ayşe Y."
func reviewerName(user *models.User) string {
	last := []rune(strings.TrimSpace(user.LastName))
	if len(last) == 0 {
		return strings.TrimSpace(user.FirstName)
	}
	return strings.TrimSpace(user.FirstName) + " " + string(last[0]) + "."
}
