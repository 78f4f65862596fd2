package admin

import (
	"strings"

	"github.com/Selinclb/eticaretsitesi/internal/http/response"
	"github.com/Selinclb/eticaretsitesi/internal/models"
	"github.com/Selinclb/eticaretsitesi/internal/repository"
	"github.com/Selinclb/eticaretsitesi/internal/service"

	"github.com/gin-gonic/gin"
)

var orderAdminErrorRules = []mappedHandlerError{
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrOrderStatusInvalid, Code: response.CodeBadRequest, Key: "error.order_status_invalid"},
}

// AdminOrderView 后台订单视图
type AdminOrderView struct {
	models.Order
	StatusDisplay string `json:"status_display"`
	UserEmail     string `json:"user_email"`
}

// UpdateOrderStatusRequest 订单状态更新请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func newAdminOrderView(order *models.Order) AdminOrderView {
	view := AdminOrderView{Order: *order, StatusDisplay: order.StatusDisplay()}
	if order.User != nil {
		view.UserEmail = order.User.Email
	}
	return view
}

// GetAdminOrders 后台订单列表
func (h *Handler) GetAdminOrders(c *gin.Context) {
	page, pageSize := normalizePagination(c)
	createdFrom, err := parseTimeNullable(c.Query("created_from"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	createdTo, err := parseTimeNullable(c.Query("created_to"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	filter := repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		Status:      strings.TrimSpace(c.Query("status")),
		OrderNumber: strings.TrimSpace(c.Query("order_number")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	}
	if raw := c.Query("user_id"); raw != "" {
		id, ok := parseQueryUint(raw)
		if !ok {
			respondError(c, response.CodeBadRequest, "error.user_id_invalid", nil)
			return
		}
		filter.UserID = id
	}

	orders, total, err := h.OrderService.ListOrdersForAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	items := make([]AdminOrderView, 0, len(orders))
	for i := range orders {
		items = append(items, newAdminOrderView(&orders[i]))
	}
	response.SuccessWithPage(c, items, response.BuildPagination(page, pageSize, total))
}

// GetAdminOrder 后台订单详情
func (h *Handler) GetAdminOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "error.order_id_invalid")
	if !ok {
		return
	}
	order, err := h.OrderService.GetOrderForAdmin(id)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "error.order_fetch_failed")
		return
	}
	response.Success(c, newAdminOrderView(order))
}

// UpdateOrderStatus 推进订单状态，仅允许向前流转
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "error.order_id_invalid")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	order, err := h.OrderService.UpdateOrderStatus(c.Request.Context(), id, strings.ToLower(strings.TrimSpace(req.Status)))
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "error.order_update_failed")
		return
	}
	if adminID, exists := c.Get("admin_id"); exists {
		requestLog(c).Infow("admin_order_status_updated", "admin_id", adminID, "order_id", order.ID, "status", order.Status)
	}
	response.Success(c, newAdminOrderView(order))
}
