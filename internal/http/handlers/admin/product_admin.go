package admin

import (
	"strings"

	"github.com/Selinclb/eticaretsitesi/internal/http/response"
	"github.com/Selinclb/eticaretsitesi/internal/repository"
	"github.com/Selinclb/eticaretsitesi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

var productErrorRules = []mappedHandlerError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrCategoryNotFound, Code: response.CodeBadRequest, Key: "error.category_not_found"},
	{Target: service.ErrSubCategoryNotFound, Code: response.CodeBadRequest, Key: "error.subcategory_not_found"},
	{Target: service.ErrSubCategoryMismatch, Code: response.CodeBadRequest, Key: "error.subcategory_mismatch"},
	{Target: service.ErrProductNameRequired, Code: response.CodeBadRequest, Key: "error.name_required"},
	{Target: service.ErrProductPriceInvalid, Code: response.CodeBadRequest, Key: "error.product_price_invalid"},
	{Target: service.ErrProductStockInvalid, Code: response.CodeBadRequest, Key: "error.product_stock_invalid"},
	{Target: service.ErrProductStatus, Code: response.CodeBadRequest, Key: "error.product_status_invalid"},
	{Target: service.ErrSlugExists, Code: response.CodeBadRequest, Key: "error.slug_exists"},
	{Target: service.ErrSlugInvalid, Code: response.CodeBadRequest, Key: "error.slug_invalid"},
}

var productImageErrorRules = []mappedHandlerError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrImageNotFound, Code: response.CodeNotFound, Key: "error.image_not_found"},
	{Target: service.ErrImageRequired, Code: response.CodeBadRequest, Key: "error.image_required"},
}

var productVariantErrorRules = []mappedHandlerError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrVariantNotFound, Code: response.CodeNotFound, Key: "error.variant_not_found"},
	{Target: service.ErrVariantTypeInvalid, Code: response.CodeBadRequest, Key: "error.variant_type_invalid"},
	{Target: service.ErrVariantExists, Code: response.CodeBadRequest, Key: "error.variant_exists"},
	{Target: service.ErrNameRequired, Code: response.CodeBadRequest, Key: "error.name_required"},
	{Target: service.ErrProductStockInvalid, Code: response.CodeBadRequest, Key: "error.product_stock_invalid"},
}

// ProductRequest 商品请求
type ProductRequest struct {
	CategoryID      uint                   `json:"category"`
	SubCategoryID   uint                   `json:"subcategory" binding:"required"`
	Name            string                 `json:"name" binding:"required"`
	Slug            string                 `json:"slug"`
	Description     string                 `json:"description"`
	Price           decimal.Decimal        `json:"price"`
	DiscountedPrice *decimal.Decimal       `json:"discounted_price"`
	Specs           map[string]interface{} `json:"specs"`
	Stock           int                    `json:"stock"`
	Status          string                 `json:"status"`
	IsBestSeller    bool                   `json:"is_best_seller"`
	IsFeatured      bool                   `json:"is_featured"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		CategoryID:      r.CategoryID,
		SubCategoryID:   r.SubCategoryID,
		Name:            r.Name,
		Slug:            r.Slug,
		Description:     r.Description,
		Price:           r.Price,
		DiscountedPrice: r.DiscountedPrice,
		Specs:           r.Specs,
		Stock:           r.Stock,
		Status:          r.Status,
		IsBestSeller:    r.IsBestSeller,
		IsFeatured:      r.IsFeatured,
	}
}

// ProductImageRequest 商品图片请求
type ProductImageRequest struct {
	Image     string `json:"image"`
	IsPrimary bool   `json:"is_primary"`
	SortOrder int    `json:"sort_order"`
}

// ProductVariantRequest 商品规格请求
type ProductVariantRequest struct {
	VariantType     string          `json:"variant_type" binding:"required"`
	Name            string          `json:"name" binding:"required"`
	SKU             string          `json:"sku"`
	Stock           int             `json:"stock"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
	IsDefault       bool            `json:"is_default"`
}

// GetAdminProducts 后台商品列表，包含未上架商品
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, pageSize := normalizePagination(c)
	filter := repository.ProductListFilter{
		Page:            page,
		PageSize:        pageSize,
		CategorySlug:    strings.TrimSpace(c.Query("category")),
		SubCategorySlug: strings.TrimSpace(c.Query("subcategory")),
		Search:          strings.TrimSpace(c.Query("search")),
		WithRelations:   true,
	}
	products, total, err := h.ProductService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// GetAdminProduct 后台商品详情
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "error.product_id_invalid")
	if !ok {
		return
	}
	product, err := h.ProductService.GetAdminByID(id)
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "error.product_fetch_failed")
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "error.product_create_failed")
		return
	}
	response.Created(c, "", product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "error.product_id_invalid")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Update(id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "error.product_update_failed")
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "error.product_id_invalid")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "error.product_delete_failed")
		return
	}
	response.Success(c, nil)
}

// AddProductImage 添加商品图片
func (h *Handler) AddProductImage(c *gin.Context) {
	id, ok := parseIDParam(c, "error.product_id_invalid")
	if !ok {
		return
	}
	var req ProductImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	image, err := h.ProductService.AddImage(id, service.ProductImageInput(req))
	if err != nil {
		respondWithMappedError(c, err, productImageErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	response.Created(c, "", image)
}

// UpdateProductImage 更新商品图片
func (h *Handler) UpdateProductImage(c *gin.Context) {
	id, ok := parseIDParam(c, "error.image_id_invalid")
	if !ok {
		return
	}
	var req ProductImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	image, err := h.ProductService.UpdateImage(id, service.ProductImageInput(req))
	if err != nil {
		respondWithMappedError(c, err, productImageErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, image)
}

// DeleteProductImage 删除商品图片
func (h *Handler) DeleteProductImage(c *gin.Context) {
	id, ok := parseIDParam(c, "error.image_id_invalid")
	if !ok {
		return
	}
	if err := h.ProductService.DeleteImage(id); err != nil {
		respondWithMappedError(c, err, productImageErrorRules, response.CodeInternal, "error.delete_failed")
		return
	}
	response.Success(c, nil)
}

// AddProductVariant 添加商品规格
func (h *Handler) AddProductVariant(c *gin.Context) {
	id, ok := parseIDParam(c, "error.product_id_invalid")
	if !ok {
		return
	}
	var req ProductVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	variant, err := h.ProductService.AddVariant(id, service.ProductVariantInput(req))
	if err != nil {
		respondWithMappedError(c, err, productVariantErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	response.Created(c, "", variant)
}

// UpdateProductVariant 更新商品规格
func (h *Handler) UpdateProductVariant(c *gin.Context) {
	id, ok := parseIDParam(c, "error.variant_id_invalid")
	if !ok {
		return
	}
	var req ProductVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	variant, err := h.ProductService.UpdateVariant(id, service.ProductVariantInput(req))
	if err != nil {
		respondWithMappedError(c, err, productVariantErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, variant)
}

// DeleteProductVariant 删除商品规格
func (h *Handler) DeleteProductVariant(c *gin.Context) {
	id, ok := parseIDParam(c, "error.variant_id_invalid")
	if !ok {
		return
	}
	if err := h.ProductService.DeleteVariant(id); err != nil {
		respondWithMappedError(c, err, productVariantErrorRules, response.CodeInternal, "error.delete_failed")
		return
	}
	response.Success(c, nil)
}
