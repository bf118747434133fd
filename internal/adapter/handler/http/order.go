package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/xcommerce/backend/internal/adapter/metrics"
	"github.com/xcommerce/backend/internal/core/domain"
	"github.com/xcommerce/backend/internal/core/port"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Handler
	service port.Service
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type checkoutItemRequest struct {
	Product uint64 `json:"product" binding:"required"`
	Qty     uint64 `json:"qty"`
}

type checkoutRequest struct {
	Address uint64                `json:"address" binding:"required"`
	Total   float64               `json:"total"`
	Tax     float64               `json:"tax"`
	Items   []checkoutItemRequest `json:"items"`
}

type orderItemResponse struct {
	Product       uint64           `json:"product"`
	Name          string           `json:"name,omitempty"`
	FeaturedImage string           `json:"featured_image,omitempty"`
	Qty           uint64           `json:"qty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	LineItemTotal decimal.Decimal  `json:"line_item_total"`
	IsAvailable   *bool            `json:"is_available,omitempty"`
}

type orderResponse struct {
	UUID        uuid.UUID           `json:"uuid"`
	Total       decimal.Decimal     `json:"total"`
	Tax         decimal.Decimal     `json:"tax"`
	Address     uint64              `json:"address"`
	CreatedDate time.Time           `json:"created_date"`
	Items       []orderItemResponse `json:"items"`
}

func newOrderResponse(order *domain.Order, detailed bool) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		r := orderItemResponse{
			Product:       item.ProductID,
			Qty:           item.Quantity,
			LineItemTotal: item.LineTotal,
		}
		if item.Product != nil {
			r.Name = item.Product.Name
			r.FeaturedImage = item.Product.FeaturedImage()
			if detailed {
				price := item.Product.Price
				r.Price = &price
				available := item.Product.Available()
				r.IsAvailable = &available
			}
		}
		items = append(items, r)
	}

	return orderResponse{
		UUID:        order.UUID,
		Total:       order.Total,
		Tax:         order.Tax,
		Address:     order.AddressID,
		CreatedDate: order.CreatedAt,
		Items:       items,
	}
}

type outOfStockResponse struct {
	Error   string `json:"error"`
	Product uint64 `json:"product"`
}

func (oh *OrderHandler) Checkout(ctx *gin.Context) {
	req := checkoutRequest{}
	err := ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		metrics.CheckoutsTotal.WithLabelValues(metrics.CheckoutOutcomeRejected).Inc()
		oh.handleValidationError(ctx, err)
		return
	}

	total, err := decimal.NewFromFloat64(req.Total)
	if err != nil {
		metrics.CheckoutsTotal.WithLabelValues(metrics.CheckoutOutcomeRejected).Inc()
		oh.handleValidationError(ctx, err)
		return
	}
	tax, err := decimal.NewFromFloat64(req.Tax)
	if err != nil {
		metrics.CheckoutsTotal.WithLabelValues(metrics.CheckoutOutcomeRejected).Inc()
		oh.handleValidationError(ctx, err)
		return
	}

	checkout := &domain.CheckoutRequest{
		UserID:    getAuthPayload(ctx).UserID,
		AddressID: req.Address,
		Total:     total,
		Tax:       tax,
		Items:     make([]domain.CheckoutItem, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		checkout.Items = append(checkout.Items, domain.CheckoutItem{
			ProductID: item.Product,
			Quantity:  item.Qty,
		})
	}

	order, err := oh.service.Checkout(ctx, checkout)
	if err != nil {
		var oos *domain.OutOfStockError
		if errors.As(err, &oos) {
			metrics.CheckoutsTotal.WithLabelValues(metrics.CheckoutOutcomeOutOfStock).Inc()
			ctx.JSON(http.StatusConflict, outOfStockResponse{
				Error:   "item unavailable",
				Product: oos.ProductID,
			})
			return
		}
		if errors.Is(err, domain.ErrInternal) {
			metrics.CheckoutsTotal.WithLabelValues(metrics.CheckoutOutcomeError).Inc()
			ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "could not complete order"})
			return
		}
		metrics.CheckoutsTotal.WithLabelValues(metrics.CheckoutOutcomeRejected).Inc()
		oh.handleError(ctx, err)
		return
	}

	metrics.CheckoutsTotal.WithLabelValues(metrics.CheckoutOutcomeSuccess).Inc()
	oh.handleSuccessWithStatus(ctx, newOrderResponse(order, false), http.StatusCreated)
}

func (oh *OrderHandler) ListOrders(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	list, err := oh.service.GetOrdersByUser(ctx, userID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]orderResponse, 0, len(list))
	for _, order := range list {
		result = append(result, newOrderResponse(order, false))
	}

	oh.handleSuccess(ctx, result)
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	orderUUID, err := uuid.Parse(ctx.Param("uuid"))
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	userID := getAuthPayload(ctx).UserID

	order, err := oh.service.GetOrder(ctx, userID, orderUUID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResponse(order, true))
}
