package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xcommerce/backend/internal/core/domain"
	"github.com/xcommerce/backend/internal/core/port"
	"go.uber.org/zap"
)

type AddressHandler struct {
	Handler
	service port.Service
}

func NewAddressHandler(service port.Service, logger *zap.Logger) (*AddressHandler, error) {
	return &AddressHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type addressRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Country      uint64 `json:"country" binding:"required"`
	City         string `json:"city" binding:"required"`
	AddressLine1 string `json:"address_line_1" binding:"required"`
	AddressLine2 string `json:"address_line_2"`
	AddressType  string `json:"address_type" binding:"required"`
}

type addressResponse struct {
	ID           uint64 `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	Country      uint64 `json:"country"`
	City         string `json:"city"`
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2,omitempty"`
	AddressType  string `json:"address_type"`
}

func newAddressResponse(a *domain.Address) addressResponse {
	return addressResponse{
		ID:           a.ID,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Phone:        a.Phone,
		Country:      a.CountryID,
		City:         a.City,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		AddressType:  a.AddressType,
	}
}

func (ah *AddressHandler) ListAddresses(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	list, err := ah.service.ListAddresses(ctx, userID)
	if err != nil {
		ah.handleError(ctx, err)
		return
	}

	result := make([]addressResponse, 0, len(list))
	for _, a := range list {
		result = append(result, newAddressResponse(a))
	}

	ah.handleSuccess(ctx, result)
}

func (ah *AddressHandler) AddAddress(ctx *gin.Context) {
	req := addressRequest{}
	err := ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		ah.handleValidationError(ctx, err)
		return
	}

	address := &domain.Address{
		UserID:       getAuthPayload(ctx).UserID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		CountryID:    req.Country,
		City:         req.City,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		AddressType:  req.AddressType,
	}

	created, err := ah.service.AddAddress(ctx, address)
	if err != nil {
		ah.handleError(ctx, err)
		return
	}

	ah.handleSuccessWithStatus(ctx, newAddressResponse(created), http.StatusCreated)
}

func (ah *AddressHandler) UpdateAddress(ctx *gin.Context) {
	addressID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ah.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	req := addressRequest{}
	err = ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		ah.handleValidationError(ctx, err)
		return
	}

	userID := getAuthPayload(ctx).UserID
	address := &domain.Address{
		ID:           addressID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		CountryID:    req.Country,
		City:         req.City,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		AddressType:  req.AddressType,
	}

	updated, err := ah.service.UpdateAddress(ctx, userID, address)
	if err != nil {
		ah.handleError(ctx, err)
		return
	}

	ah.handleSuccess(ctx, newAddressResponse(updated))
}

func (ah *AddressHandler) DeleteAddress(ctx *gin.Context) {
	addressID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ah.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	userID := getAuthPayload(ctx).UserID

	err = ah.service.DeleteAddress(ctx, userID, addressID)
	if err != nil {
		ah.handleError(ctx, err)
		return
	}

	ah.handleSuccessWithStatus(ctx, nil, http.StatusNoContent)
}
