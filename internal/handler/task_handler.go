package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"hotelcluster/internal/errors"
	"hotelcluster/internal/guard"
	"hotelcluster/internal/service"
)

// TaskHandler handles task endpoints.
type TaskHandler struct{}

// NewTaskHandler creates a new task handler.
func NewTaskHandler() *TaskHandler {
	return &TaskHandler{}
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	DueDate     string  `json:"due_date" validate:"required"`
	Priority    string  `json:"priority" validate:"required,oneof=low medium high"`
	HotelIDs    []int64 `json:"hotel_ids" validate:"required,min=1"`
}

// AssignUserRequest represents a single-user assignment request.
type AssignUserRequest struct {
	Principal string `json:"principal" validate:"required"`
}

// AssignHotelsRequest represents a hotel-wide assignment request.
type AssignHotelsRequest struct {
	HotelIDs []int64 `json:"hotel_ids" validate:"required,min=1"`
}

// CommentRequest represents a task comment.
type CommentRequest struct {
	Comment string `json:"comment" validate:"required"`
}

// TaskResponse represents a created task.
type TaskResponse struct {
	ID string `json:"id"`
}

// CreateTask godoc
// @Summary Create a task and assign it to all users of its hotels
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTaskRequest true "Task data"
// @Success 201 {object} TaskResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	dueDate, err := time.Parse(time.RFC3339, req.DueDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid due_date",
			Code:  "INVALID_DATE",
		})
	}

	a := guard.ActorFrom(c)
	id, err := a.CreateTask(c.Request().Context(), service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		Priority:    req.Priority,
		HotelIDs:    req.HotelIDs,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, TaskResponse{ID: id})
}

// ListTasks godoc
// @Summary List all tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Task
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	a := guard.ActorFrom(c)

	tasks, err := a.GetAllTasks(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, tasks)
}

// ListMyTasks godoc
// @Summary List the caller's assigned tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Router /tasks/mine [get]
func (h *TaskHandler) ListMyTasks(c echo.Context) error {
	a := guard.ActorFrom(c)

	tasks, err := a.GetMyTasks(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, tasks)
}

// GetTask godoc
// @Summary Get a task by id
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	a := guard.ActorFrom(c)

	task, err := a.GetTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, task)
}

// AssignUser godoc
// @Summary Assign a user to a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body AssignUserRequest true "Assignee"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/tasks/{id}/assignees [post]
func (h *TaskHandler) AssignUser(c echo.Context) error {
	var req AssignUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	a := guard.ActorFrom(c)
	if err := a.AssignUserToTask(c.Request().Context(), c.Param("id"), req.Principal); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "user assigned successfully",
	})
}

// AssignHotel godoc
// @Summary Assign a task to all users of a hotel
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param hotelID path int true "Hotel ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/tasks/{id}/hotels/{hotelID} [post]
func (h *TaskHandler) AssignHotel(c echo.Context) error {
	hotelID, err := strconv.ParseInt(c.Param("hotelID"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid hotel id",
			Code:  "INVALID_HOTEL_ID",
		})
	}

	a := guard.ActorFrom(c)
	if err := a.AssignTaskToAllUsersOfHotel(c.Request().Context(), c.Param("id"), hotelID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "task assigned successfully",
	})
}

// AssignHotels godoc
// @Summary Assign a task to all users of several hotels
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body AssignHotelsRequest true "Hotels"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/tasks/{id}/hotels [post]
func (h *TaskHandler) AssignHotels(c echo.Context) error {
	var req AssignHotelsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	a := guard.ActorFrom(c)
	if err := a.AssignTaskToAllUsersOfHotels(c.Request().Context(), c.Param("id"), req.HotelIDs); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "task assigned successfully",
	})
}

// AddComment godoc
// @Summary Add a comment to a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body CommentRequest true "Comment"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id}/comments [post]
func (h *TaskHandler) AddComment(c echo.Context) error {
	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	a := guard.ActorFrom(c)
	if err := a.AddComment(c.Request().Context(), c.Param("id"), req.Comment); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": "comment added successfully",
	})
}

// ListComments godoc
// @Summary List a task's comments in insertion order
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {array} model.TaskComment
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id}/comments [get]
func (h *TaskHandler) ListComments(c echo.Context) error {
	a := guard.ActorFrom(c)

	comments, err := a.GetTaskComments(c.Request().Context(), c.Param("id"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, comments)
}
