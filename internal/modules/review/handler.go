package review

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Virgile-Eratel/YDaysM1-api/internal/middleware"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/place/:id/reviews", h.GetByPlace)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/reviews", h.Create)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid review payload")
		return
	}

	userID := c.GetInt64(middleware.CtxUserID)
	rv, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrPlaceNotFound) {
			response.Error(c, http.StatusNotFound, "Place not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to create review")
		return
	}
	c.JSON(http.StatusCreated, rv)
}

func (h *Handler) GetByPlace(c *gin.Context) {
	placeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid place ID")
		return
	}

	reviews, err := h.service.GetByPlace(c.Request.Context(), placeID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list reviews")
		return
	}
	c.JSON(http.StatusOK, reviews)
}
