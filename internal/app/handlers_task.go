package app

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitcoach/coaching-service/internal/sdk/middleware"
	"github.com/fitcoach/coaching-service/internal/sdk/models"
	"github.com/fitcoach/coaching-service/internal/sdk/sqldb"
	"github.com/fitcoach/coaching-service/internal/services/sentry"
)

// HandleCreateTask persists a workout task and attaches the student to the
// calling trainer. The Trainer middleware has already gated the route.
func (a *App) HandleCreateTask(c *gin.Context) {
	trainerID, err := middleware.GetAccountID(c)
	if err != nil {
		writeError(c, ErrUnauthorized, nil)
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, ErrUnmarshal, nil)
		return
	}

	if errCode, validationErrors := validateCreateTaskInput(req); errCode != "" {
		writeError(c, errCode, validationErrors)
		return
	}

	task, err := a.db.CreateTask(c.Request.Context(), models.NewTask{
		TrainerID:       trainerID,
		StudentID:       req.StudentID,
		Title:           req.Title,
		Description:     req.Description,
		Type:            req.Type,
		DurationMinutes: req.DurationMinutes,
		Intensity:       req.Intensity,
		DateTime:        req.DateTime,
	})
	if err != nil {
		if errors.Is(err, sqldb.ErrForeignKeyViolation) {
			writeError(c, ErrStudentNotFound, nil)
			return
		}
		a.toSentry(c, "create_task", "db", sentry.LevelError, err)
		writeError(c, ErrCreateTask, nil)
		return
	}

	// Attach the student to this trainer. Overwrites any previous trainer,
	// matching the established assignment semantics. Best effort: the task
	// itself is already committed.
	if err := a.db.AssignTrainer(c.Request.Context(), req.StudentID, trainerID); err != nil {
		a.toSentry(c, "create_task", "db_assign", sentry.LevelWarning, err)
	}

	c.JSON(http.StatusCreated, task)
}

// HandleListTasks returns the tasks the caller participates in, as trainer
// or as student.
func (a *App) HandleListTasks(c *gin.Context) {
	accountID, err := middleware.GetAccountID(c)
	if err != nil {
		writeError(c, ErrUnauthorized, nil)
		return
	}

	tasks, err := a.db.ListTasksForAccount(c.Request.Context(), accountID)
	if err != nil {
		a.toSentry(c, "list_tasks", "db", sentry.LevelError, err)
		writeError(c, ErrRetrieveTasks, nil)
		return
	}

	if tasks == nil {
		tasks = []models.Task{}
	}

	c.JSON(http.StatusOK, tasks)
}
