package report

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func granularityFromQuery(c *gin.Context) Granularity {
	return Granularity(c.DefaultQuery("range", "daily"))
}

func (h *Handler) Get(c *gin.Context) {
	rep, err := h.service.BuildReport(c.Request.Context(), granularityFromQuery(c))
	if err != nil {
		if errors.Is(err, ErrBadGranularity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}
	c.JSON(http.StatusOK, rep)
}

// Export streams the same report as an xlsx attachment.
func (h *Handler) Export(c *gin.Context) {
	rep, err := h.service.BuildReport(c.Request.Context(), granularityFromQuery(c))
	if err != nil {
		if errors.Is(err, ErrBadGranularity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=report.xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := WriteExcel(c.Writer, rep); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write Excel file"})
		return
	}
}
