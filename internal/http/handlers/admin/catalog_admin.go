package admin

import (
	"github.com/Selinclb/eticaretsitesi/internal/http/response"
	"github.com/Selinclb/eticaretsitesi/internal/repository"
	"github.com/Selinclb/eticaretsitesi/internal/service"

	"github.com/gin-gonic/gin"
)

var categoryErrorRules = []mappedHandlerError{
	{Target: service.ErrCategoryNotFound, Code: response.CodeNotFound, Key: "error.category_not_found"},
	{Target: service.ErrSubCategoryNotFound, Code: response.CodeNotFound, Key: "error.subcategory_not_found"},
	{Target: service.ErrNameRequired, Code: response.CodeBadRequest, Key: "error.name_required"},
	{Target: service.ErrSlugExists, Code: response.CodeBadRequest, Key: "error.slug_exists"},
	{Target: service.ErrSlugInvalid, Code: response.CodeBadRequest, Key: "error.slug_invalid"},
	{Target: service.ErrCategoryInUse, Code: response.CodeBadRequest, Key: "error.category_in_use"},
	{Target: service.ErrSubCategoryInUse, Code: response.CodeBadRequest, Key: "error.subcategory_in_use"},
}

// CategoryRequest 分类请求
type CategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	Slug      string `json:"slug"`
	SortOrder int    `json:"sort_order"`
}

// SubCategoryRequest 子分类请求
type SubCategoryRequest struct {
	CategoryID uint   `json:"category" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Slug       string `json:"slug"`
	Image      string `json:"image"`
}

func (r CategoryRequest) toInput() service.CategoryInput {
	return service.CategoryInput{Name: r.Name, Slug: r.Slug, SortOrder: r.SortOrder}
}

func (r SubCategoryRequest) toInput() service.SubCategoryInput {
	return service.SubCategoryInput{CategoryID: r.CategoryID, Name: r.Name, Slug: r.Slug, Image: r.Image}
}

// GetAdminCategories 分类列表
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Create(req.toInput())
	if err != nil {
		respondWithMappedError(c, err, categoryErrorRules, response.CodeInternal, "error.category_create_failed")
		return
	}
	response.Created(c, "", category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "error.category_id_invalid")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Update(id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, categoryErrorRules, response.CodeInternal, "error.category_update_failed")
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "error.category_id_invalid")
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(id); err != nil {
		respondWithMappedError(c, err, categoryErrorRules, response.CodeInternal, "error.category_delete_failed")
		return
	}
	response.Success(c, nil)
}

// GetAdminSubCategories 子分类列表，可按 category_id 过滤
func (h *Handler) GetAdminSubCategories(c *gin.Context) {
	var categoryID uint
	if raw := c.Query("category_id"); raw != "" {
		id, ok := parseQueryUint(raw)
		if !ok {
			respondError(c, response.CodeBadRequest, "error.category_id_invalid", nil)
			return
		}
		categoryID = id
	}
	subs, err := h.SubCategoryRepo.List(repository.SubCategoryListFilter{CategoryID: categoryID})
	if err != nil {
		respondError(c, response.CodeInternal, "error.subcategory_fetch_failed", err)
		return
	}
	response.Success(c, subs)
}

// CreateSubCategory 创建子分类
func (h *Handler) CreateSubCategory(c *gin.Context) {
	var req SubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	sub, err := h.CategoryService.CreateSubCategory(req.toInput())
	if err != nil {
		respondWithMappedError(c, err, categoryErrorRules, response.CodeInternal, "error.subcategory_create_failed")
		return
	}
	response.Created(c, "", sub)
}

// UpdateSubCategory 更新子分类
func (h *Handler) UpdateSubCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "error.subcategory_id_invalid")
	if !ok {
		return
	}
	var req SubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	sub, err := h.CategoryService.UpdateSubCategory(id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, categoryErrorRules, response.CodeInternal, "error.subcategory_update_failed")
		return
	}
	response.Success(c, sub)
}

// DeleteSubCategory 删除子分类
func (h *Handler) DeleteSubCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "error.subcategory_id_invalid")
	if !ok {
		return
	}
	if err := h.CategoryService.DeleteSubCategory(id); err != nil {
		respondWithMappedError(c, err, categoryErrorRules, response.CodeInternal, "error.subcategory_delete_failed")
		return
	}
	response.Success(c, nil)
}
