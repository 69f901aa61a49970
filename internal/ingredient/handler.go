package ingredient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"rasoighar/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Archiver stores a copy of the raw import file. Optional: nil disables archival.
type Archiver interface {
	Upload(ctx context.Context, key string, body io.Reader) (string, error)
}

type Handler struct {
	service  *Service
	archiver Archiver
}

func NewHandler(service *Service, archiver Archiver) *Handler {
	return &Handler{service: service, archiver: archiver}
}

type ingredientRequest struct {
	Name       *string `json:"name"`
	CategoryID *int64  `json:"category_id"`
}

func (h *Handler) List(c *gin.Context) {
	ingredients, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list ingredients"})
		return
	}
	if ingredients == nil {
		ingredients = []Ingredient{}
	}
	c.JSON(http.StatusOK, ingredients)
}

func (h *Handler) Create(c *gin.Context) {
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Name == nil || req.CategoryID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and category_id required"})
		return
	}

	ing, err := h.service.Create(c.Request.Context(), *req.Name, *req.CategoryID)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, ErrCategoryNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "category not found"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, ing)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.service.Update(c.Request.Context(), id, req.Name, req.CategoryID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		case errors.Is(err, ErrCategoryNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "category not found"})
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
			c.JSON(http.StatusConflict, gin.H{"error": "cannot delete ingredient referenced by orders"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete ingredient"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Import accepts a multipart CSV upload, archives the raw file when an
// archiver is configured, and upserts the rows.
func (h *Handler) Import(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".csv" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only .csv files are accepted"})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}

	result, err := h.service.ImportCSV(c.Request.Context(), bytes.NewReader(data))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.archiver != nil {
		key := fmt.Sprintf("imports/%s%s", uuid.New().String(), filepath.Ext(header.Filename))
		url, err := h.archiver.Upload(c.Request.Context(), key, bytes.NewReader(data))
		if err != nil {
			// The rows are already committed; losing the archive copy is not fatal.
			logger.Warn("failed to archive import file", zap.Error(err))
		} else {
			result.ArchiveURL = url
		}
	}

	c.JSON(http.StatusOK, result)
}
