package http

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harwoodcarpentry/tracker-backend/internal/tracking/domain"
	"github.com/harwoodcarpentry/tracker-backend/internal/tracking/service"
)

type Handler struct {
	svc *service.ProjectService
}

// RegisterPublic attaches the read-only routes.
func RegisterPublic(rg *gin.RouterGroup, svc *service.ProjectService) {
	h := &Handler{svc: svc}
	rg.GET("/project/:id", h.get)
}

// RegisterAdmin attaches the write routes. The caller wraps rg with the
// admin-key middleware before registering.
func RegisterAdmin(rg *gin.RouterGroup, svc *service.ProjectService) {
	h := &Handler{svc: svc}
	rg.POST("/project", h.create)
	rg.POST("/project/:id", h.upsert)
}

// writeReq is the body for both write routes. Steps stays untyped so the
// reconciler can tolerate malformed entries instead of failing the bind.
type writeReq struct {
	ClientName string `json:"client_name"`
	Status     string `json:"status"`
	Steps      any    `json:"steps"`
}

func (h *Handler) get(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing id"})
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		log.Printf("[project] get %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *Handler) upsert(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing id"})
		return
	}

	var req writeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.ClientName) == "" || strings.TrimSpace(req.Status) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing client_name or status"})
		return
	}

	if _, err := h.svc.Upsert(c.Request.Context(), id, req.ClientName, req.Status, req.Steps); err != nil {
		if errors.Is(err, domain.ErrInvalidProject) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing client_name or status"})
			return
		}
		log.Printf("[project] upsert %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) create(c *gin.Context) {
	var req writeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.ClientName) == "" || strings.TrimSpace(req.Status) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing client_name or status"})
		return
	}

	p, err := h.svc.Create(c.Request.Context(), req.ClientName, req.Status, req.Steps)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidProject) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing client_name or status"})
			return
		}
		log.Printf("[project] create: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project_id": p.ID})
}
