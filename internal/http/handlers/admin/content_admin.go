package admin

import (
	"github.com/Selinclb/eticaretsitesi/internal/http/response"
	"github.com/Selinclb/eticaretsitesi/internal/repository"
	"github.com/Selinclb/eticaretsitesi/internal/service"

	"github.com/gin-gonic/gin"
)

var sliderErrorRules = []mappedHandlerError{
	{Target: service.ErrSliderNotFound, Code: response.CodeNotFound, Key: "error.slider_not_found"},
	{Target: service.ErrImageRequired, Code: response.CodeBadRequest, Key: "error.image_required"},
	{Target: service.ErrInvalidInput, Code: response.CodeBadRequest, Key: "error.slider_url_required"},
}

var reviewAdminErrorRules = []mappedHandlerError{
	{Target: service.ErrReviewNotFound, Code: response.CodeNotFound, Key: "error.review_not_found"},
}

// SliderRequest 轮播图请求
type SliderRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image" binding:"required"`
	URL         string `json:"url" binding:"required"`
	ButtonText  string `json:"button_text"`
	SortOrder   int    `json:"order"`
	IsActive    bool   `json:"is_active"`
}

// ReviewApproveRequest 评价审核请求
type ReviewApproveRequest struct {
	IsApproved *bool `json:"is_approved" binding:"required"`
}

// GetAdminSliders 轮播图列表
func (h *Handler) GetAdminSliders(c *gin.Context) {
	sliders, err := h.SliderService.ListAll()
	if err != nil {
		respondError(c, response.CodeInternal, "error.slider_fetch_failed", err)
		return
	}
	response.Success(c, sliders)
}

// CreateSlider 创建轮播图
func (h *Handler) CreateSlider(c *gin.Context) {
	var req SliderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	slider, err := h.SliderService.Create(service.SliderInput(req))
	if err != nil {
		respondWithMappedError(c, err, sliderErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	response.Created(c, "", slider)
}

// UpdateSlider 更新轮播图
func (h *Handler) UpdateSlider(c *gin.Context) {
	id, ok := parseIDParam(c, "error.slider_id_invalid")
	if !ok {
		return
	}
	var req SliderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	slider, err := h.SliderService.Update(id, service.SliderInput(req))
	if err != nil {
		respondWithMappedError(c, err, sliderErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, slider)
}

// DeleteSlider 删除轮播图
func (h *Handler) DeleteSlider(c *gin.Context) {
	id, ok := parseIDParam(c, "error.slider_id_invalid")
	if !ok {
		return
	}
	if err := h.SliderService.Delete(id); err != nil {
		respondWithMappedError(c, err, sliderErrorRules, response.CodeInternal, "error.delete_failed")
		return
	}
	response.Success(c, nil)
}

// GetAdminReviews 评价列表，支持按商品、用户与审核状态过滤
func (h *Handler) GetAdminReviews(c *gin.Context) {
	page, pageSize := normalizePagination(c)
	filter := repository.ReviewListFilter{
		Page:        page,
		PageSize:    pageSize,
		OrderNewest: true,
	}
	if raw := c.Query("product_id"); raw != "" {
		id, ok := parseQueryUint(raw)
		if !ok {
			respondError(c, response.CodeBadRequest, "error.product_id_invalid", nil)
			return
		}
		filter.ProductID = id
	}
	if raw := c.Query("user_id"); raw != "" {
		id, ok := parseQueryUint(raw)
		if !ok {
			respondError(c, response.CodeBadRequest, "error.user_id_invalid", nil)
			return
		}
		filter.UserID = id
	}
	switch c.Query("is_approved") {
	case "true", "1":
		approved := true
		filter.IsApproved = &approved
	case "false", "0":
		approved := false
		filter.IsApproved = &approved
	}

	reviews, total, err := h.ReviewService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.review_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, reviews, response.BuildPagination(page, pageSize, total))
}

// ApproveReview 审核评价
func (h *Handler) ApproveReview(c *gin.Context) {
	id, ok := parseIDParam(c, "error.review_id_invalid")
	if !ok {
		return
	}
	var req ReviewApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	review, err := h.ReviewService.SetApproved(id, *req.IsApproved)
	if err != nil {
		respondWithMappedError(c, err, reviewAdminErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, review)
}

// DeleteReview 删除评价
func (h *Handler) DeleteReview(c *gin.Context) {
	id, ok := parseIDParam(c, "error.review_id_invalid")
	if !ok {
		return
	}
	if err := h.ReviewService.Delete(id); err != nil {
		respondWithMappedError(c, err, reviewAdminErrorRules, response.CodeInternal, "error.delete_failed")
		return
	}
	response.Success(c, nil)
}
