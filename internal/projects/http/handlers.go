package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tilemaker-app/tilemaker-backend/internal/auth"
	"github.com/tilemaker-app/tilemaker-backend/internal/projects"
)

func (h *Handler) list(c *gin.Context) {
	userID := auth.UserID(c)
	items, err := h.store.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, items)
}

type saveReq struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Cards      json.RawMessage `json:"cards"`
	ExportName *string         `json:"exportName"`
}

func (h *Handler) save(c *gin.Context) {
	var req saveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if strings.TrimSpace(req.ID) == "" || strings.TrimSpace(req.Name) == "" || len(req.Cards) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	userID := auth.UserID(c)
	p := projects.Project{
		ID:         req.ID,
		Name:       req.Name,
		Cards:      req.Cards,
		ExportName: req.ExportName,
	}
	if err := h.store.Upsert(c.Request.Context(), userID, p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing ID"})
		return
	}

	userID := auth.UserID(c)
	if err := h.store.Delete(c.Request.Context(), userID, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	// Success even when the id was absent server-side; the client already
	// removed it locally.
	c.JSON(http.StatusOK, gin.H{"success": true})
}
