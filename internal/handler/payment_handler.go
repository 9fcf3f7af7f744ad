package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/edumind/elearn-backend/internal/middleware"
	"github.com/edumind/elearn-backend/internal/model"
	"github.com/edumind/elearn-backend/internal/response"
	"github.com/edumind/elearn-backend/internal/service"
	"github.com/edumind/elearn-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// PaymentHandler handles checkout and payment verification endpoints.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Checkout godoc
// POST /api/v1/user/courses/:id/checkout
// Returns the hosted checkout URL for a course purchase.
func (h *PaymentHandler) Checkout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	courseID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	checkout, err := h.paymentService.Checkout(c.Request.Context(), claims.UserID, courseID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyOwned):
			response.Fail(c, http.StatusBadRequest, response.ErrAlreadyOwned)
		case errors.Is(err, pgx.ErrNoRows):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, checkout)
}

// VerifyCheckout godoc
// POST /api/v1/user/payments/verify
// Confirms a hosted-checkout session after redirect-back and grants the course.
func (h *PaymentHandler) VerifyCheckout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.VerifyCheckoutRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	err := h.paymentService.VerifyCheckout(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentIncomplete):
			response.Fail(c, http.StatusBadRequest, response.ErrPaymentIncomplete)
		case errors.Is(err, pgx.ErrNoRows):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Course purchased successfully"})
}

// VerifyFallback godoc
// POST /api/v1/user/courses/:id/payment-verification
// Confirms a fallback-provider payment via its HMAC signature.
func (h *PaymentHandler) VerifyFallback(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	courseID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.VerifyFallbackRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	err = h.paymentService.VerifyFallback(c.Request.Context(), claims.UserID, courseID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSignature):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidSignature)
		case errors.Is(err, pgx.ErrNoRows):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Course purchased successfully"})
}
