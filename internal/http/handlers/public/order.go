package public

import (
	"strings"
	"time"

	handlershared "github.com/Selinclb/eticaretsitesi/internal/http/handlers/shared"
	"github.com/Selinclb/eticaretsitesi/internal/http/response"
	"github.com/Selinclb/eticaretsitesi/internal/i18n"
	"github.com/Selinclb/eticaretsitesi/internal/metrics"
	"github.com/Selinclb/eticaretsitesi/internal/models"
	"github.com/Selinclb/eticaretsitesi/internal/repository"
	"github.com/Selinclb/eticaretsitesi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreateOrderItemRequest 下单商品项
type CreateOrderItemRequest struct {
	Product  uint            `json:"product" binding:"required"`
	Quantity int             `json:"quantity" binding:"required"`
	Price    decimal.Decimal `json:"price"`
}

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	ShippingAddress string                   `json:"shipping_address" binding:"required"`
	TotalAmount     *decimal.Decimal         `json:"total_amount"`
	Items           []CreateOrderItemRequest `json:"items" binding:"required"`
}

// OrderItemView 订单项响应
type OrderItemView struct {
	ID           uint         `json:"id"`
	Product      *uint        `json:"product"`
	ProductName  string       `json:"product_name"`
	ProductImage string       `json:"product_image"`
	Quantity     int          `json:"quantity"`
	Price        models.Money `json:"price"`
	Total        models.Money `json:"total"`
}

// OrderView 订单响应
type OrderView struct {
	ID              uint            `json:"id"`
	OrderNumber     string          `json:"order_number"`
	Status          string          `json:"status"`
	StatusDisplay   string          `json:"status_display"`
	TotalAmount     models.Money    `json:"total_amount"`
	ShippingAddress string          `json:"shipping_address"`
	CancelledAt     *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	Items           []OrderItemView `json:"items"`
}

// CreateOrder 创建订单，订单与订单项在同一事务内写入
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	items := make([]service.CreateOrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CreateOrderItemInput{
			ProductID: item.Product,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	order, err := h.OrderService.CreateOrder(c.Request.Context(), service.CreateOrderInput{
		UserID:          uid,
		ShippingAddress: req.ShippingAddress,
		TotalAmount:     req.TotalAmount,
		Items:           items,
	})
	if err != nil {
		respondWithMappedError(c, err, orderCreateErrorRules, response.CodeInternal, "error.order_create_failed")
		return
	}
	metrics.RecordOrderCreated()

	response.Created(c, i18n.T(i18n.ResolveLocale(c), "order.created"), NewOrderView(order))
}

// ListOrders 获取当前用户订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := normalizePagination(c)

	orders, total, err := h.OrderService.ListOrdersByUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}

	items := make([]OrderView, 0, len(orders))
	for i := range orders {
		items = append(items, NewOrderView(&orders[i]))
	}
	response.SuccessWithPage(c, items, response.BuildPagination(page, pageSize, total))
}

// GetOrder 获取当前用户的订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.order_id_invalid", nil)
		return
	}

	order, err := h.OrderService.GetOrderByUser(orderID, uid)
	if err != nil {
		respondWithMappedError(c, err, orderCancelErrorRules, response.CodeInternal, "error.order_fetch_failed")
		return
	}
	response.Success(c, NewOrderView(order))
}

// CancelOrder 用户取消订单，仅待确认订单可取消
func (h *Handler) CancelOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.order_id_invalid", nil)
		return
	}

	order, err := h.OrderService.CancelOrder(c.Request.Context(), orderID, uid)
	if err != nil {
		respondWithMappedError(c, err, orderCancelErrorRules, response.CodeInternal, "error.order_update_failed")
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "order.cancelled"), NewOrderView(order))
}

// NewOrderView 构建订单响应
func NewOrderView(order *models.Order) OrderView {
	view := OrderView{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		Status:          order.Status,
		StatusDisplay:   order.StatusDisplay(),
		TotalAmount:     order.TotalAmount,
		ShippingAddress: order.ShippingAddress,
		CancelledAt:     order.CancelledAt,
		CreatedAt:       order.CreatedAt,
		Items:           make([]OrderItemView, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		itemView := OrderItemView{
			ID:       item.ID,
			Product:  item.ProductID,
			Quantity: item.Quantity,
			Price:    item.Price,
			Total:    item.Total,
		}
		if item.Product != nil {
			itemView.ProductName = item.Product.Name
			itemView.ProductImage = item.Product.PrimaryImageURL()
		}
		view.Items = append(view.Items, itemView)
	}
	return view
}
