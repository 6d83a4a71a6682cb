package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pedrohsilva/tarefas-api/internal/domain"
	"github.com/pedrohsilva/tarefas-api/internal/repository"
)

type userUsecaser interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ListPage(ctx context.Context, skip, limit int) ([]*domain.User, int, error)
	Update(ctx context.Context, id string, input repository.UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type UserHandler struct {
	users  userUsecaser
	logger *slog.Logger
}

func NewUserHandler(users userUsecaser, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger.With("component", "user_handler")}
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"    binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

type userPageResponse struct {
	Total int            `json:"total"`
	Data  []userResponse `json:"data"`
}

// GET /usuarios
func (h *UserHandler) List(c *gin.Context) {
	skip, limit := pageParams(c)

	users, total, err := h.users.ListPage(c.Request.Context(), skip, limit)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list users", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	page := userPageResponse{Total: total, Data: make([]userResponse, 0, len(users))}
	for _, u := range users {
		page.Data = append(page.Data, newUserResponse(u))
	}
	c.JSON(http.StatusOK, page)
}

// GET /usuarios/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	userID := c.Param("id")

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "get user", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

// PATCH /usuarios/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	userID := c.Param("id")

	user, err := h.users.Update(c.Request.Context(), userID, repository.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": errEmailTaken})
		default:
			h.logger.ErrorContext(c.Request.Context(), "update user", "user_id", userID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

// DELETE /usuarios/:id
func (h *UserHandler) Delete(c *gin.Context) {
	userID := c.Param("id")

	if err := h.users.Delete(c.Request.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "delete user", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.Status(http.StatusNoContent)
}
