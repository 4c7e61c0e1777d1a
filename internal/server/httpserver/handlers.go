// Package httpserver exposes the user directory over HTTP using gin.
package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"github.com/dmitrijs2005/userkeeper/internal/server/services"
	"github.com/gin-gonic/gin"
)

// UserService is the account directory consumed by the handlers.
type UserService interface {
	Register(ctx context.Context, name, email, mobile, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByMobile(ctx context.Context, mobile string) (*models.User, error)
	Update(ctx context.Context, id, name, email, mobile, password string) error
	SetStatus(ctx context.Context, id string, status int) (bool, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// ExportService uploads directory snapshots.
type ExportService interface {
	Export(ctx context.Context) (*services.ExportResult, error)
}

// Handler holds the HTTP handlers of the user API.
type Handler struct {
	users  UserService
	export ExportService
	logger logging.Logger
}

func NewHandler(users UserService, export ExportService, logger logging.Logger) *Handler {
	return &Handler{users: users, export: export, logger: logger}
}

func (h *Handler) badBody(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Status: false, Message: msgInvalidBody})
}

// ListUsers handles GET /get-users.
func (h *Handler) ListUsers(c *gin.Context) {
	list, err := h.users.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, UsersResponse{
		Status:  true,
		Message: "Users fetched successfully",
		Users:   models.Views(list),
	})
}

// Register handles POST /register-user.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badBody(c)
		return
	}

	u, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Mobile, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, UserResponse{
		Status:  true,
		Message: "User registered successfully",
		User:    UserSummary{ID: u.ID, Name: u.Name, Email: u.Email},
	})
}

// Login handles POST /login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badBody(c)
		return
	}

	u, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{
		Status:  true,
		Message: "User logged in successfully",
		User:    UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Token: u.Token},
	})
}

// SetStatus handles POST /active-Deactive-User-by-id.
func (h *Handler) SetStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badBody(c)
		return
	}

	active, err := h.users.SetStatus(c.Request.Context(), req.ID, req.statusValue())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Status:  true,
		Message: "User status updated to " + models.StatusLabel(active),
	})
}

func (h *Handler) respondUser(c *gin.Context, u *models.User, err error) {
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserViewResponse{
		Status:  true,
		Message: "User fetched successfully",
		User:    u.View(),
	})
}

// GetByID handles GET /get-user-by-id/:id.
func (h *Handler) GetByID(c *gin.Context) {
	u, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	h.respondUser(c, u, err)
}

// GetByEmail handles GET /get-user-by-email/:email.
func (h *Handler) GetByEmail(c *gin.Context) {
	u, err := h.users.GetByEmail(c.Request.Context(), c.Param("email"))
	h.respondUser(c, u, err)
}

// GetByMobile handles GET /get-user-by-mobile/:mobile.
func (h *Handler) GetByMobile(c *gin.Context) {
	u, err := h.users.GetByMobile(c.Request.Context(), c.Param("mobile"))
	h.respondUser(c, u, err)
}

// Update handles PUT /update-user/:id.
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badBody(c)
		return
	}

	if err := h.users.Update(c.Request.Context(), c.Param("id"), req.Name, req.Email, req.Mobile, req.Password); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Status: true, Message: "User updated successfully"})
}

// Delete handles DELETE /delete-user/:id.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Status: true, Message: "User deleted successfully"})
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader(common.AuthorizationHeaderName)
	if len(header) < len(common.BearerPrefix) || !strings.EqualFold(header[:len(common.BearerPrefix)], common.BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(common.BearerPrefix):])
}

// Me handles GET /me, returning the user that owns the bearer token.
func (h *Handler) Me(c *gin.Context) {
	u, err := h.users.Authenticate(c.Request.Context(), bearerToken(c))
	h.respondUser(c, u, err)
}

// Export handles POST /export-users.
func (h *Handler) Export(c *gin.Context) {
	res, err := h.export.Export(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ExportResponse{
		Status:  true,
		Message: "Users exported successfully",
		Key:     res.Key,
		URL:     res.URL,
		Count:   res.Count,
	})
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	if err := h.users.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
