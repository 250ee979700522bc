package app

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/fitcoach/coaching-service/internal/sdk/models"
)

func TestHandleCreateReport(t *testing.T) {
	t.Run("create and list round trip", func(t *testing.T) {
		env := newTestEnv(t)
		student := env.addAccount(t, "79161234567", "secret1", false)

		comment := "felt strong"
		w := env.do(t, http.MethodPost, "/report", env.bearer(t, student), CreateReportRequest{
			Difficulty: 7,
			SelfHealth: 8,
			Comment:    &comment,
			Date:       time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC),
		})
		requireStatus(t, w, http.StatusCreated)

		var created models.SummaryReport
		if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if created.UserID != student.ID {
			t.Fatalf("user_id = %d, want the authenticated student %d", created.UserID, student.ID)
		}

		w = env.do(t, http.MethodGet, "/report", env.bearer(t, student), nil)
		requireStatus(t, w, http.StatusOK)

		var reports []models.SummaryReport
		if err := json.Unmarshal(w.Body.Bytes(), &reports); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if len(reports) != 1 || reports[0].ID != created.ID {
			t.Fatalf("report list = %+v, want the created report", reports)
		}
	})

	t.Run("skip requires a reason", func(t *testing.T) {
		env := newTestEnv(t)
		student := env.addAccount(t, "79161234567", "secret1", false)

		w := env.do(t, http.MethodPost, "/report", env.bearer(t, student), CreateReportRequest{
			IsSkip: true,
		})
		requireStatus(t, w, http.StatusBadRequest)
		if code := decodeError(t, w); code != ErrSkipReasonRequired {
			t.Fatalf("error = %q, want %q", code, ErrSkipReasonRequired)
		}
	})

	t.Run("skip with reason accepted", func(t *testing.T) {
		env := newTestEnv(t)
		student := env.addAccount(t, "79161234567", "secret1", false)

		reason := "travelling"
		w := env.do(t, http.MethodPost, "/report", env.bearer(t, student), CreateReportRequest{
			IsSkip:     true,
			SkipReason: &reason,
		})
		requireStatus(t, w, http.StatusCreated)
	})

	t.Run("missing date defaults to now", func(t *testing.T) {
		env := newTestEnv(t)
		student := env.addAccount(t, "79161234567", "secret1", false)

		w := env.do(t, http.MethodPost, "/report", env.bearer(t, student), CreateReportRequest{
			Difficulty: 5,
			SelfHealth: 5,
		})
		requireStatus(t, w, http.StatusCreated)

		var created models.SummaryReport
		if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if created.Date.IsZero() {
			t.Fatal("expected a default date")
		}
	})
}

func TestHandleListReportsVisibleToAnyToken(t *testing.T) {
	env := newTestEnv(t)
	student := env.addAccount(t, "79161234567", "secret1", false)
	other := env.addAccount(t, "79161234568", "secret1", false)

	w := env.do(t, http.MethodPost, "/report", env.bearer(t, student), CreateReportRequest{
		Difficulty: 6,
		SelfHealth: 6,
	})
	requireStatus(t, w, http.StatusCreated)

	// Listing is unfiltered: another authenticated account sees the report.
	w = env.do(t, http.MethodGet, "/report", env.bearer(t, other), nil)
	requireStatus(t, w, http.StatusOK)

	var reports []models.SummaryReport
	if err := json.Unmarshal(w.Body.Bytes(), &reports); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}
}
