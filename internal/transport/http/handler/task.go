package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pedrohsilva/tarefas-api/internal/domain"
	"github.com/pedrohsilva/tarefas-api/internal/repository"
	"github.com/pedrohsilva/tarefas-api/internal/transport/http/middleware"
	"github.com/pedrohsilva/tarefas-api/internal/usecase"
)

type taskUsecaser interface {
	Create(ctx context.Context, input usecase.CreateTaskInput, ownerID string) (*domain.Task, error)
	GetByID(ctx context.Context, id, ownerID string) (*domain.Task, error)
	ListPage(ctx context.Context, ownerID string, skip, limit int) ([]*domain.Task, int, error)
	Update(ctx context.Context, id string, input repository.UpdateTaskInput, ownerID string) (*domain.Task, error)
	Delete(ctx context.Context, id, ownerID string) error
}

type TaskHandler struct {
	tasks  taskUsecaser
	logger *slog.Logger
}

func NewTaskHandler(tasks taskUsecaser, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, logger: logger.With("component", "task_handler")}
}

type createTaskRequest struct {
	Title       string          `json:"title"       binding:"required"`
	Description string          `json:"description"`
	Status      domain.Status   `json:"status"      binding:"omitempty,oneof=PENDING DONE"`
	Priority    domain.Priority `json:"priority"    binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *time.Time      `json:"due_date"`
	OwnerID     string          `json:"owner_id"`
}

type updateTaskRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Status      *domain.Status   `json:"status"   binding:"omitempty,oneof=PENDING DONE"`
	Priority    *domain.Priority `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *time.Time       `json:"due_date"`
}

type taskResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      domain.Status   `json:"status"`
	Priority    domain.Priority `json:"priority"`
	DueDate     time.Time       `json:"due_date"`
	OwnerID     string          `json:"owner_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type taskPageResponse struct {
	Total int            `json:"total"`
	Data  []taskResponse `json:"data"`
}

func newTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		OwnerID:     t.OwnerID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// pageParams parses ?skip= and ?limit=, clamping limit to 100.
func pageParams(c *gin.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return skip, limit
}

// POST /tarefas
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	current := middleware.MustCurrentUser(c)

	input := usecase.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		OwnerID:     req.OwnerID,
	}
	if req.DueDate != nil {
		input.DueDate = *req.DueDate
	}

	task, err := h.tasks.Create(c.Request.Context(), input, current.ID)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "create task", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, newTaskResponse(task))
}

// GET /tarefas/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	current := middleware.MustCurrentUser(c)
	taskID := c.Param("id")

	task, err := h.tasks.GetByID(c.Request.Context(), taskID, current.ID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errTaskNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "get task", "task_id", taskID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

// GET /tarefas
func (h *TaskHandler) List(c *gin.Context) {
	current := middleware.MustCurrentUser(c)
	skip, limit := pageParams(c)

	tasks, total, err := h.tasks.ListPage(c.Request.Context(), current.ID, skip, limit)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list tasks", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	page := taskPageResponse{Total: total, Data: make([]taskResponse, 0, len(tasks))}
	for _, t := range tasks {
		page.Data = append(page.Data, newTaskResponse(t))
	}
	c.JSON(http.StatusOK, page)
}

// PATCH /tarefas/:id
func (h *TaskHandler) Update(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	current := middleware.MustCurrentUser(c)
	taskID := c.Param("id")

	task, err := h.tasks.Update(c.Request.Context(), taskID, repository.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	}, current.ID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errTaskNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "update task", "task_id", taskID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

// DELETE /tarefas/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	current := middleware.MustCurrentUser(c)
	taskID := c.Param("id")

	if err := h.tasks.Delete(c.Request.Context(), taskID, current.ID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errTaskNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "delete task", "task_id", taskID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.Status(http.StatusNoContent)
}
