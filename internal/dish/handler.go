package dish

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type dishRequest struct {
	Name         *string      `json:"name"`
	BaseQuantity *float64     `json:"base_quantity"`
	BaseUnit     *string      `json:"base_unit"`
	PricePerBase *float64     `json:"price_per_base"`
	CostPerBase  *float64     `json:"cost_per_base"`
	Ingredients  []RecipeLine `json:"ingredients"`
}

func (h *Handler) List(c *gin.Context) {
	dishes, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list dishes"})
		return
	}
	if dishes == nil {
		dishes = []Dish{}
	}
	c.JSON(http.StatusOK, dishes)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dish"})
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) Create(c *gin.Context) {
	var req dishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Name == nil || req.BaseQuantity == nil || req.BaseUnit == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, base_quantity, base_unit required"})
		return
	}

	d := &Dish{
		Name:         *req.Name,
		BaseQuantity: *req.BaseQuantity,
		BaseUnit:     *req.BaseUnit,
		PricePerBase: req.PricePerBase,
		CostPerBase:  req.CostPerBase,
		Ingredients:  req.Ingredients,
	}

	created, err := h.service.Create(c.Request.Context(), d)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req dishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	patch := Patch{
		Name:         req.Name,
		BaseQuantity: req.BaseQuantity,
		BaseUnit:     req.BaseUnit,
		PricePerBase: req.PricePerBase,
		CostPerBase:  req.CostPerBase,
	}

	if err := h.service.Update(c.Request.Context(), id, patch, req.Ingredients); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		case errors.Is(err, ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		case errors.Is(err, ErrInUse):
			c.JSON(http.StatusConflict, gin.H{"error": "cannot delete dish referenced by orders"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete dish"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
