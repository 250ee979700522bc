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

func (a *App) HandleGetProfile(c *gin.Context) {
	accountID, err := middleware.GetAccountID(c)
	if err != nil {
		writeError(c, ErrUnauthorized, nil)
		return
	}

	account, err := a.db.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			writeError(c, ErrUserNotFound, nil)
			return
		}
		a.toSentry(c, "get_profile", "db", sentry.LevelError, err)
		writeError(c, ErrRetrieveAccount, nil)
		return
	}

	c.JSON(http.StatusOK, account)
}

func (a *App) HandleUpdateProfile(c *gin.Context) {
	accountID, err := middleware.GetAccountID(c)
	if err != nil {
		writeError(c, ErrUnauthorized, nil)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, ErrUnmarshal, nil)
		return
	}

	account, err := a.db.UpdateAccountProfile(c.Request.Context(), accountID, models.AccountProfile{
		Surname:    req.Surname,
		Name:       req.Name,
		Patronymic: req.Patronymic,
		Age:        req.Age,
		Weight:     req.Weight,
		Height:     req.Height,
		Gender:     req.Gender,
		Nickname:   req.Nickname,
	})
	if err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			writeError(c, ErrUserNotFound, nil)
			return
		}
		if errors.Is(err, sqldb.ErrDBDuplicatedEntry) {
			writeError(c, ErrUserExists, nil)
			return
		}
		a.toSentry(c, "update_profile", "db", sentry.LevelError, err)
		writeError(c, ErrUpdateProfile, nil)
		return
	}

	c.JSON(http.StatusOK, account)
}

// HandleListStudents returns the students assigned to the calling trainer.
// The Trainer middleware has already rejected non-trainer callers.
func (a *App) HandleListStudents(c *gin.Context) {
	trainerID, err := middleware.GetAccountID(c)
	if err != nil {
		writeError(c, ErrUnauthorized, nil)
		return
	}

	students, err := a.db.ListStudentsByTrainer(c.Request.Context(), trainerID)
	if err != nil {
		a.toSentry(c, "list_students", "db", sentry.LevelError, err)
		writeError(c, ErrRetrieveStudents, nil)
		return
	}

	if students == nil {
		students = []models.Account{}
	}

	c.JSON(http.StatusOK, students)
}

// HandleStudentTasks returns the tasks the calling trainer assigned to one of
// their students, looked up by nickname. The nickname match is scoped to the
// caller's trainer id, so another trainer's student resolves to not-found.
func (a *App) HandleStudentTasks(c *gin.Context) {
	trainerID, err := middleware.GetAccountID(c)
	if err != nil {
		writeError(c, ErrUnauthorized, nil)
		return
	}

	nickname := c.Param("nickname")

	student, err := a.db.GetStudentByNickname(c.Request.Context(), trainerID, nickname)
	if err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			writeError(c, ErrStudentNotFound, nil)
			return
		}
		a.toSentry(c, "student_tasks", "db", sentry.LevelError, err)
		writeError(c, ErrRetrieveStudents, nil)
		return
	}

	tasks, err := a.db.ListTasksForStudent(c.Request.Context(), trainerID, student.ID)
	if err != nil {
		a.toSentry(c, "student_tasks", "db_tasks", sentry.LevelError, err)
		writeError(c, ErrRetrieveTasks, nil)
		return
	}

	if tasks == nil {
		tasks = []models.Task{}
	}

	c.JSON(http.StatusOK, StudentTasksResponse{Tasks: tasks})
}
