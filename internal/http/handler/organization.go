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

type OrganizationHandler struct {
	orgService service.OrganizationService
}

func NewOrganizationHandler(orgService service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

func (h *OrganizationHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.orgService.Create(ctx, req.OrganizationName, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "organization already exists"})
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already in use"})
		default:
			slog.ErrorContext(ctx, "failed to create organization", "error", err, "organization_name", req.OrganizationName)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create organization"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(record))
}

func (h *OrganizationHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	name := c.Query("organization_name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "organization_name is required"})
		return
	}

	record, err := h.orgService.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, service.ErrOrgNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "organization not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to get organization", "error", err, "organization_name", name)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get organization"})
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(record))
}

func (h *OrganizationHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req dto.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.orgService.Update(ctx, service.UpdateOrganizationParams{
		CurrentName:     req.CurrentName,
		NewName:         req.NewName,
		Email:           req.Email,
		Password:        req.Password,
		RequestingOrgID: identity.OrgID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrgNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "organization not found"})
		case errors.Is(err, service.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "not authorized to update this organization"})
		case errors.Is(err, service.ErrNameTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "new organization name already exists"})
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already in use"})
		default:
			slog.ErrorContext(ctx, "failed to update organization", "error", err, "organization_name", req.CurrentName)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update organization"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "organization updated successfully"})
}

func (h *OrganizationHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req dto.DeleteOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.orgService.Delete(ctx, req.OrganizationName, identity.OrgID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrgNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "organization not found"})
		case errors.Is(err, service.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "not authorized to delete this organization"})
		default:
			slog.ErrorContext(ctx, "failed to delete organization", "error", err, "organization_name", req.OrganizationName)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete organization"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "organization deleted successfully"})
}
