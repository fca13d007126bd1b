package http

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tilemaker-app/tilemaker-backend/internal/auth"
	"github.com/tilemaker-app/tilemaker-backend/internal/images"
)

type uploadReq struct {
	Data        string `json:"data"`
	ContentType string `json:"contentType"`
	FileName    string `json:"fileName"`
}

func (h *Handler) upload(c *gin.Context) {
	var req uploadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if req.Data == "" || req.ContentType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if int64(len(req.Data)) > h.maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("payload exceeds the %d byte upload limit", h.maxBytes),
		})
		return
	}

	userID := auth.UserID(c)

	if h.blob != nil {
		raw, err := decodePayload(req.Data)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid base64 payload"})
			return
		}
		url, err := h.blob.Put(c.Request.Context(), raw, req.ContentType)
		if err != nil {
			log.Printf("[images] blob put failed for user %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url, "success": true})
		return
	}

	id, err := h.store.Insert(c.Request.Context(), userID, req.Data, req.ContentType, req.FileName)
	if err != nil {
		if errors.Is(err, images.ErrTooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
			return
		}
		log.Printf("[images] insert failed for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      id,
		"url":     "/api/image?id=" + id,
		"success": true,
	})
}

func (h *Handler) fetch(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	if buf, contentType, ok := h.cacheGet(c, id); ok {
		serveImage(c, buf, contentType)
		return
	}

	data, contentType, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, images.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
			return
		}
		log.Printf("[images] fetch %s: %v", id, err)
		c.Status(http.StatusInternalServerError)
		return
	}

	buf, err := decodePayload(data)
	if err != nil {
		log.Printf("[images] corrupt payload for %s: %v", id, err)
		c.Status(http.StatusInternalServerError)
		return
	}

	h.cachePut(c, id, buf, contentType)
	serveImage(c, buf, contentType)
}

func serveImage(c *gin.Context, buf []byte, contentType string) {
	// Content-addressed and immutable once created, so cache forever.
	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Data(http.StatusOK, contentType, buf)
}

func (h *Handler) cacheGet(c *gin.Context, id string) ([]byte, string, bool) {
	if h.cache == nil {
		return nil, "", false
	}
	fields, err := h.cache.HGetAll(c.Request.Context(), cacheKey(id)).Result()
	if err != nil || len(fields) == 0 {
		return nil, "", false
	}
	data, okData := fields["data"]
	contentType, okType := fields["type"]
	if !okData || !okType {
		return nil, "", false
	}
	return []byte(data), contentType, true
}

func (h *Handler) cachePut(c *gin.Context, id string, buf []byte, contentType string) {
	if h.cache == nil {
		return
	}
	if err := h.cache.HSet(c.Request.Context(), cacheKey(id), "data", buf, "type", contentType).Err(); err != nil {
		log.Printf("[images] cache write %s: %v", id, err)
	}
}

func cacheKey(id string) string {
	return "image:" + id
}

// decodePayload accepts either a bare base64 string or a full data-URL
// ("data:image/png;base64,iVBOR...") and returns the raw bytes.
func decodePayload(data string) ([]byte, error) {
	if i := strings.Index(data, "base64,"); i >= 0 {
		data = data[i+len("base64,"):]
	}
	return base64.StdEncoding.DecodeString(data)
}
