package place

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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
	rg.GET("/get-all-places", h.GetAll)
	rg.GET("/get-one-place/:id", h.GetOne)
	rg.GET("/places/:id/availability", h.Availability)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/places", middleware.OwnerOnly(), h.Create)
}

func (h *Handler) Create(c *gin.Context) {
	var form CreatePlaceForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid form data")
		return
	}

	// image is optional; a listing without a photo is allowed
	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	hostID := c.GetInt64(middleware.CtxUserID)
	p, err := h.service.Create(c.Request.Context(), hostID, form, image)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to create place")
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetAll(c *gin.Context) {
	places, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list places")
		return
	}
	c.JSON(http.StatusOK, places)
}

func (h *Handler) GetOne(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid place ID")
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "Place not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to load place")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) Availability(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid place ID")
		return
	}

	from, ok := parseDateParam(c.Query("from"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid from date")
		return
	}
	to, ok := parseDateParam(c.Query("to"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid to date")
		return
	}

	avail, err := h.service.Availability(c.Request.Context(), id, from, to)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "Place not found")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to load availability")
		}
		return
	}
	c.JSON(http.StatusOK, avail)
}

func parseDateParam(v string) (time.Time, bool) {
	if v == "" {
		return time.Time{}, true
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
