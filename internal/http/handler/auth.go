package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"orghub.app/api-server/internal/auth"
	"orghub.app/api-server/internal/http/dto"
	"orghub.app/api-server/internal/service"
)

type AuthHandler struct {
	adminService service.AdminService
	issuer       *auth.TokenIssuer
}

func NewAuthHandler(adminService service.AdminService, issuer *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{
		adminService: adminService,
		issuer:       issuer,
	}
}

// Login authenticates an admin by email and password and returns a bearer
// token. Failures are intentionally generic.
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	admin, org, err := h.adminService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		slog.ErrorContext(ctx, "failed to authenticate admin", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to authenticate"})
		return
	}

	token, err := h.issuer.Issue(admin.ID, org.ID, 0)
	if err != nil {
		slog.ErrorContext(ctx, "failed to issue token", "error", err, "admin_id", admin.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
