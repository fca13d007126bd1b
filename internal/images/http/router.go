package http

import "github.com/gin-gonic/gin"

// RegisterUpload attaches the authenticated upload route.
func (h *Handler) RegisterUpload(rg *gin.RouterGroup) {
	rg.POST("/upload", h.upload)
}

// RegisterPublic attaches the unauthenticated fetch route. Image ids are
// unguessable and payloads immutable, so fetch needs no token.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.GET("/image", h.fetch)
}
