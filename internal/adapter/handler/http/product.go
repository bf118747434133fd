package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"github.com/xcommerce/backend/internal/core/domain"
	"github.com/xcommerce/backend/internal/core/port"
	"go.uber.org/zap"
)

type ProductHandler struct {
	Handler
	service port.Service
}

func NewProductHandler(service port.Service, logger *zap.Logger) (*ProductHandler, error) {
	return &ProductHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type productListItem struct {
	ID    uint64          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image,omitempty"`
}

func (ph *ProductHandler) ListProducts(ctx *gin.Context) {
	list, err := ph.service.ListProducts(ctx)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	result := make([]productListItem, 0, len(list))
	for _, p := range list {
		result = append(result, productListItem{
			ID:    p.ID,
			Name:  p.Name,
			Price: p.Price,
			Image: p.FeaturedImage(),
		})
	}

	ph.handleSuccess(ctx, result)
}

type productDetailResponse struct {
	ID          uint64          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Stock       uint64          `json:"stock"`
	Images      []string        `json:"images"`
}

func (ph *ProductHandler) GetProduct(ctx *gin.Context) {
	productID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ph.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	product, err := ph.service.GetProduct(ctx, productID)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	images := make([]string, 0, len(product.Images))
	for _, img := range product.Images {
		images = append(images, img.URL)
	}

	ph.handleSuccess(ctx, productDetailResponse{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Description: product.Description,
		Stock:       product.Stock,
		Images:      images,
	})
}

type countryResponse struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

func (ph *ProductHandler) ListCountries(ctx *gin.Context) {
	list, err := ph.service.ListCountries(ctx)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	result := make([]countryResponse, 0, len(list))
	for _, c := range list {
		result = append(result, countryResponse{ID: c.ID, Name: c.Name})
	}

	ph.handleSuccess(ctx, result)
}
