package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pedrohsilva/tarefas-api/internal/domain"
	"github.com/pedrohsilva/tarefas-api/internal/transport/http/middleware"
	"github.com/pedrohsilva/tarefas-api/internal/usecase"
)

// accountUsecaser is the subset of AccountUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type accountUsecaser interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Refresh(ctx context.Context, current *domain.User) (string, error)
	Me(ctx context.Context, id string) (*domain.User, error)
}

type AuthHandler struct {
	accounts accountUsecaser
	logger   *slog.Logger
}

func NewAuthHandler(accounts accountUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		logger:   logger.With("component", "auth_handler"),
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// newUserResponse deliberately has no field for the password hash.
func newUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": errMissingFields})
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": errEmailTaken})
		default:
			h.logger.ErrorContext(c.Request.Context(), "register", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(user))
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// POST /auth/login
// Unknown email and wrong password return the identical error body.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	token, err := h.accounts.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidCredentials})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "login", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "Bearer"})
}

// POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	current := middleware.MustCurrentUser(c)

	token, err := h.accounts.Refresh(c.Request.Context(), current)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "refresh", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "Bearer"})
}

// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	current := middleware.MustCurrentUser(c)

	user, err := h.accounts.Me(c.Request.Context(), current.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "me", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}
