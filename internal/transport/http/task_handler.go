package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/task-manager-app/backend/internal/domain"
	"github.com/task-manager-app/backend/internal/service"
	"github.com/task-manager-app/backend/internal/util"
)

type TaskHandler struct {
	tasks *service.TaskService
}

func RegisterTasks(e *echo.Echo, tasks *service.TaskService, tokens *util.JWTManager) {
	handler := &TaskHandler{tasks: tasks}

	group := e.Group("/api/tasks", RequireAuth(tokens))
	group.POST("", handler.create)
	group.GET("", handler.list)
	group.GET("/:id", handler.get)
	group.PUT("/:id", handler.update)
	group.DELETE("/:id", handler.remove)
}

func (h *TaskHandler) create(c echo.Context) error {
	userID, ok := CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Message("Token no proporcionado"))
	}

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Message("Cuerpo de la solicitud inválido"))
	}

	fecha, err := parseFecha(req.FechaVencimiento)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Message("Fecha de vencimiento inválida"))
	}

	task, err := h.tasks.Create(c.Request().Context(), userID, service.TaskCreateInput{
		Titulo:           req.Titulo,
		Descripcion:      req.Descripcion,
		Prioridad:        req.Prioridad,
		FechaVencimiento: fecha,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskTitleRequired):
			return c.JSON(http.StatusBadRequest, util.Message("Por favor ingresa un título"))
		case errors.Is(err, service.ErrTaskInvalidPriority):
			return c.JSON(http.StatusBadRequest, util.Message("Prioridad inválida"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Message("Error interno del servidor"))
		}
	}

	return c.JSON(http.StatusCreated, util.Envelope{
		"message": "Tarea creada exitosamente",
		"task":    toTaskResponse(task),
	})
}

func (h *TaskHandler) list(c echo.Context) error {
	userID, ok := CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Message("Token no proporcionado"))
	}

	details, err := h.tasks.List(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Message("Error interno del servidor"))
	}

	items := make([]TaskResponse, 0, len(details))
	for i := range details {
		items = append(items, toTaskDetailResponse(&details[i]))
	}
	return c.JSON(http.StatusOK, items)
}

func (h *TaskHandler) get(c echo.Context) error {
	userID, ok := CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Message("Token no proporcionado"))
	}

	taskID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		return c.JSON(http.StatusNotFound, util.Message("Tarea no encontrada"))
	}

	detail, err := h.tasks.Get(c.Request().Context(), userID, taskID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			return c.JSON(http.StatusNotFound, util.Message("Tarea no encontrada"))
		case errors.Is(err, service.ErrTaskForbidden):
			return c.JSON(http.StatusForbidden, util.Message("No tienes permiso para acceder a esta tarea"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Message("Error interno del servidor"))
		}
	}

	return c.JSON(http.StatusOK, toTaskDetailResponse(detail))
}

func (h *TaskHandler) update(c echo.Context) error {
	userID, ok := CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Message("Token no proporcionado"))
	}

	taskID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		return c.JSON(http.StatusNotFound, util.Message("Tarea no encontrada"))
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Message("Cuerpo de la solicitud inválido"))
	}

	fecha, err := parseFecha(req.FechaVencimiento)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Message("Fecha de vencimiento inválida"))
	}

	task, err := h.tasks.Update(c.Request().Context(), userID, taskID, domain.TaskUpdate{
		Titulo:           req.Titulo,
		Descripcion:      req.Descripcion,
		Completada:       req.Completada,
		Prioridad:        req.Prioridad,
		FechaVencimiento: fecha,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			return c.JSON(http.StatusNotFound, util.Message("Tarea no encontrada"))
		case errors.Is(err, service.ErrTaskForbidden):
			return c.JSON(http.StatusForbidden, util.Message("No tienes permiso para actualizar esta tarea"))
		case errors.Is(err, service.ErrTaskTitleRequired):
			return c.JSON(http.StatusBadRequest, util.Message("Por favor ingresa un título"))
		case errors.Is(err, service.ErrTaskInvalidPriority):
			return c.JSON(http.StatusBadRequest, util.Message("Prioridad inválida"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Message("Error interno del servidor"))
		}
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"message": "Tarea actualizada exitosamente",
		"task":    toTaskResponse(task),
	})
}

func (h *TaskHandler) remove(c echo.Context) error {
	userID, ok := CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Message("Token no proporcionado"))
	}

	taskID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		return c.JSON(http.StatusNotFound, util.Message("Tarea no encontrada"))
	}

	if err := h.tasks.Delete(c.Request().Context(), userID, taskID); err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			return c.JSON(http.StatusNotFound, util.Message("Tarea no encontrada"))
		case errors.Is(err, service.ErrTaskForbidden):
			return c.JSON(http.StatusForbidden, util.Message("No tienes permiso para eliminar esta tarea"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Message("Error interno del servidor"))
		}
	}

	return c.JSON(http.StatusOK, util.Message("Tarea eliminada exitosamente"))
}

// parseFecha accepts RFC 3339 timestamps or bare dates, which is what the
// browser client sends from a date input.
func parseFecha(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", trimmed)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
