package checkout

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Virgile-Eratel/YDaysM1-api/internal/middleware"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/pkg/response"
)

type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/api/create-checkout-session/:id", h.CreateSession)
}

// RegisterWebhookRoutes must stay outside the auth middleware: Stripe
// authenticates with its signature header, not a bearer token.
func (h *Handler) RegisterWebhookRoutes(rg *gin.RouterGroup) {
	rg.POST("/api/stripe/webhook", h.Webhook)
}

func (h *Handler) CreateSession(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid reservation ID")
		return
	}

	sessionID, err := h.service.CreateSession(c.Request.Context(), id, c.GetInt64(middleware.CtxUserID))
	if err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound):
			response.Error(c, http.StatusNotFound, "Reservation not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "You may only pay for your own reservations")
		case errors.Is(err, ErrSessionCreation):
			response.Error(c, http.StatusBadGateway, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to create checkout session")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": sessionID})
}

func (h *Handler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Unreadable payload")
		return
	}

	err = h.service.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, ErrInvalidWebhook) {
			response.Error(c, http.StatusBadRequest, "Invalid webhook")
			return
		}
		// transition errors are reported so Stripe retries the event
		h.log.Error("webhook processing failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "Webhook processing failed")
		return
	}

	c.Status(http.StatusOK)
}
