package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"orghub.app/api-server/internal/http/dto"
	"orghub.app/api-server/internal/http/middleware"
	"orghub.app/api-server/internal/service"
)

// DocumentHandler serves the caller's own backing collection; the token's
// org identity selects the collection.
type DocumentHandler struct {
	orgService service.OrganizationService
}

func NewDocumentHandler(orgService service.OrganizationService) *DocumentHandler {
	return &DocumentHandler{orgService: orgService}
}

func (h *DocumentHandler) Insert(c *gin.Context) {
	ctx := c.Request.Context()

	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req dto.InsertDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := h.orgService.InsertDocument(ctx, identity.OrgID, req.Body)
	if err != nil {
		if errors.Is(err, service.ErrOrgNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "organization not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to insert document", "error", err, "org_id", identity.OrgID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to insert document"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

func (h *DocumentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	docs, err := h.orgService.ListDocuments(ctx, identity.OrgID)
	if err != nil {
		if errors.Is(err, service.ErrOrgNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "organization not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to list documents", "error", err, "org_id", identity.OrgID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list documents"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponses(docs))
}
