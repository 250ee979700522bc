package app

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/fitcoach/coaching-service/internal/sdk/models"
)

func validTaskRequest(studentID int64) CreateTaskRequest {
	return CreateTaskRequest{
		StudentID:       studentID,
		Title:           "Leg day",
		Description:     "Squats and lunges",
		Type:            "strength",
		DurationMinutes: 60,
		Intensity:       "high",
		DateTime:        time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC),
	}
}

func TestHandleCreateTask(t *testing.T) {
	t.Run("create and list round trip", func(t *testing.T) {
		env := newTestEnv(t)
		trainer := env.addAccount(t, "79161234567", "secret1", true)
		student := env.addAccount(t, "79161234568", "secret1", false)

		w := env.do(t, http.MethodPost, "/task", env.bearer(t, trainer), validTaskRequest(student.ID))
		requireStatus(t, w, http.StatusCreated)

		var created models.Task
		if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if created.TrainerID != trainer.ID || created.StudentID != student.ID {
			t.Fatalf("participants = (%d,%d), want (%d,%d)", created.TrainerID, created.StudentID, trainer.ID, student.ID)
		}

		// The student now sees the task.
		w = env.do(t, http.MethodGet, "/task", env.bearer(t, student), nil)
		requireStatus(t, w, http.StatusOK)

		var tasks []models.Task
		if err := json.Unmarshal(w.Body.Bytes(), &tasks); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if len(tasks) != 1 || tasks[0].ID != created.ID {
			t.Fatalf("student task list = %+v, want the created task", tasks)
		}
	})

	t.Run("assigns the student to the trainer", func(t *testing.T) {
		env := newTestEnv(t)
		trainer := env.addAccount(t, "79161234567", "secret1", true)
		student := env.addAccount(t, "79161234568", "secret1", false)

		w := env.do(t, http.MethodPost, "/task", env.bearer(t, trainer), validTaskRequest(student.ID))
		requireStatus(t, w, http.StatusCreated)

		updated := env.db.accounts[student.ID]
		if updated.TrainerID == nil || *updated.TrainerID != trainer.ID {
			t.Fatalf("trainer_id = %v, want %d", updated.TrainerID, trainer.ID)
		}
	})

	t.Run("student cannot create tasks", func(t *testing.T) {
		env := newTestEnv(t)
		student := env.addAccount(t, "79161234567", "secret1", false)
		other := env.addAccount(t, "79161234568", "secret1", false)

		w := env.do(t, http.MethodPost, "/task", env.bearer(t, student), validTaskRequest(other.ID))
		requireStatus(t, w, http.StatusForbidden)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		env := newTestEnv(t)
		trainer := env.addAccount(t, "79161234567", "secret1", true)

		req := validTaskRequest(0)
		w := env.do(t, http.MethodPost, "/task", env.bearer(t, trainer), req)
		requireStatus(t, w, http.StatusBadRequest)
		if code := decodeError(t, w); code != ErrMissingFields {
			t.Fatalf("error = %q, want %q", code, ErrMissingFields)
		}
	})

	t.Run("unknown student", func(t *testing.T) {
		env := newTestEnv(t)
		trainer := env.addAccount(t, "79161234567", "secret1", true)

		w := env.do(t, http.MethodPost, "/task", env.bearer(t, trainer), validTaskRequest(999))
		requireStatus(t, w, http.StatusNotFound)
		if code := decodeError(t, w); code != ErrStudentNotFound {
			t.Fatalf("error = %q, want %q", code, ErrStudentNotFound)
		}
	})
}

func TestHandleListTasks(t *testing.T) {
	env := newTestEnv(t)
	trainer := env.addAccount(t, "79161234567", "secret1", true)
	student := env.addAccount(t, "79161234568", "secret1", false)
	bystander := env.addAccount(t, "79161234569", "secret1", false)

	w := env.do(t, http.MethodPost, "/task", env.bearer(t, trainer), validTaskRequest(student.ID))
	requireStatus(t, w, http.StatusCreated)

	// The trainer participates, the bystander does not.
	w = env.do(t, http.MethodGet, "/task", env.bearer(t, trainer), nil)
	requireStatus(t, w, http.StatusOK)

	var tasks []models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("trainer sees %d tasks, want 1", len(tasks))
	}

	w = env.do(t, http.MethodGet, "/task", env.bearer(t, bystander), nil)
	requireStatus(t, w, http.StatusOK)

	tasks = nil
	if err := json.Unmarshal(w.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("bystander sees %d tasks, want 0", len(tasks))
	}
}
