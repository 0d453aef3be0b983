package reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Virgile-Eratel/YDaysM1-api/internal/domain"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/middleware"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires every reservation endpoint onto the
// authenticated group; the owner dashboard additionally requires the
// owner role.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations", h.Create)
	rg.GET("/user/:id/reservations", h.GetUserReservations)
	rg.GET("/get-one-reservation/:id", h.GetOne)

	api := rg.Group("/api")
	{
		api.POST("/reservations/:id/cancel", h.action(domain.ActionCancel, domain.RoleUser))
		api.POST("/reservations/:id/confirm", h.action(domain.ActionConfirm, domain.RoleOwner))
		api.POST("/reservations/:id/complete", h.action(domain.ActionComplete, domain.RoleOwner))
		api.POST("/reservations/:id/owner-cancel", h.action(domain.ActionCancel, domain.RoleOwner))

		api.GET("/owner/reservations", middleware.OwnerOnly(), h.OwnerOverview)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid reservation payload")
		return
	}

	userID := c.GetInt64(middleware.CtxUserID)
	r, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDateRange), errors.Is(err, ErrValidation):
			response.Message(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrPlaceNotFound):
			response.Message(c, http.StatusNotFound, "Place not found")
		case errors.Is(err, ErrNotAvailable):
			response.Message(c, http.StatusConflict, "Place is not available for the selected dates")
		default:
			response.Message(c, http.StatusInternalServerError, "Failed to create reservation")
		}
		return
	}

	c.JSON(http.StatusCreated, toResponse(r))
}

func (h *Handler) GetUserReservations(c *gin.Context) {
	requestedID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	// a user may only list their own reservations
	if requestedID != c.GetInt64(middleware.CtxUserID) {
		response.Error(c, http.StatusForbidden, "You may only view your own reservations")
		return
	}

	rs, err := h.service.GetUserReservations(c.Request.Context(), requestedID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list reservations")
		return
	}
	c.JSON(http.StatusOK, toResponseList(rs))
}

func (h *Handler) GetOne(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid reservation ID")
		return
	}

	r, err := h.service.Get(c.Request.Context(), id, c.GetInt64(middleware.CtxUserID))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(r))
}

func (h *Handler) OwnerOverview(c *gin.Context) {
	ownerID := c.GetInt64(middleware.CtxUserID)

	rs, stats, err := h.service.OwnerOverview(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to load reservations")
		return
	}

	c.JSON(http.StatusOK, OwnerOverviewResponse{
		Reservations: toResponseList(rs),
		Stats:        stats,
	})
}

// action builds the handler for one transition endpoint. The route
// fixes the actor role: /cancel acts as the booking user,
// /confirm|complete|owner-cancel act as the place owner.
func (h *Handler) action(action domain.ReservationAction, role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid reservation ID")
			return
		}

		if c.GetString(middleware.CtxRole) != string(role) {
			response.Error(c, http.StatusForbidden, "Access denied: insufficient permissions")
			return
		}

		r, err := h.service.Transition(c.Request.Context(), id, action, c.GetInt64(middleware.CtxUserID), role)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toResponse(r))
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "Reservation not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "You are not allowed to perform this action")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "This reservation cannot change to the requested status")
	default:
		response.Error(c, http.StatusInternalServerError, "Operation failed")
	}
}
