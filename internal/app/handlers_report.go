package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fitcoach/coaching-service/internal/sdk/middleware"
	"github.com/fitcoach/coaching-service/internal/sdk/models"
	"github.com/fitcoach/coaching-service/internal/services/sentry"
)

// HandleCreateReport persists a post-workout summary report for the calling
// student.
func (a *App) HandleCreateReport(c *gin.Context) {
	accountID, err := middleware.GetAccountID(c)
	if err != nil {
		writeError(c, ErrUnauthorized, nil)
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, ErrUnmarshal, nil)
		return
	}

	if errCode, validationErrors := validateCreateReportInput(req); errCode != "" {
		writeError(c, errCode, validationErrors)
		return
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}

	report, err := a.db.CreateReport(c.Request.Context(), models.NewSummaryReport{
		UserID:     accountID,
		Difficulty: req.Difficulty,
		SelfHealth: req.SelfHealth,
		Comment:    req.Comment,
		IsSkip:     req.IsSkip,
		SkipReason: req.SkipReason,
		Date:       date,
	})
	if err != nil {
		a.toSentry(c, "create_report", "db", sentry.LevelError, err)
		writeError(c, ErrCreateReport, nil)
		return
	}

	c.JSON(http.StatusCreated, report)
}

// HandleListReports returns every summary report to any authenticated
// caller. Deliberately unfiltered, see DESIGN.md.
func (a *App) HandleListReports(c *gin.Context) {
	reports, err := a.db.ListReports(c.Request.Context())
	if err != nil {
		a.toSentry(c, "list_reports", "db", sentry.LevelError, err)
		writeError(c, ErrRetrieveReports, nil)
		return
	}

	if reports == nil {
		reports = []models.SummaryReport{}
	}

	c.JSON(http.StatusOK, reports)
}
