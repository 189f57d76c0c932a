package server

import (
	"errors"
	"net/http"

	"payment-gateway/internal/domain"
	"payment-gateway/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgNotFound         = "Page not found"
	msgBadRequest       = "Malformed request body"
	msgUnsupportedMedia = "Content type must be application/json"
	msgInternal         = "Internal server error"
)

type PaymentHandler struct {
	service service.PaymentService
	logger  *zap.Logger
}

func NewPaymentHandler(service service.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger,
	}
}

func (h *PaymentHandler) Register(r gin.IRouter) {
	payments := r.Group("/payments")
	payments.POST("", h.CreatePayment)
	payments.GET("/:id", h.GetPayment)
}

func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	if c.ContentType() != gin.MIMEJSON {
		c.JSON(http.StatusUnsupportedMediaType, errorResponse{Message: msgUnsupportedMedia})
		return
	}

	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("rejecting malformed payment body", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse{Message: msgBadRequest})
		return
	}

	payment, err := h.service.ProcessPayment(c.Request.Context(), req.toDomain())
	if err != nil {
		h.logger.Error("processing payment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Message: msgInternal})
		return
	}

	c.JSON(http.StatusCreated, newPaymentResponse(payment))
}

func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, errorResponse{Message: msgNotFound})
		return
	}

	payment, err := h.service.GetPayment(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Message: msgNotFound})
			return
		}
		h.logger.Error("getting payment", zap.String("payment_id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Message: msgInternal})
		return
	}

	c.JSON(http.StatusOK, newPaymentResponse(payment))
}
