package app

import (
	"time"

	"github.com/fitcoach/coaching-service/internal/sdk/models"
)

type RegisterRequest struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
	IsTrainer   bool   `json:"is_trainer"`
}

type LoginRequest struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

type AuthResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	Account      models.Account `json:"user"`
}

type UpdateProfileRequest struct {
	Surname    *string  `json:"surname"`
	Name       *string  `json:"name"`
	Patronymic *string  `json:"patronymic"`
	Age        *int64   `json:"age"`
	Weight     *float64 `json:"weight"`
	Height     *float64 `json:"height"`
	Gender     *string  `json:"gender"`
	Nickname   *string  `json:"nickname"`
}

type CreateTaskRequest struct {
	StudentID       int64     `json:"student_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Type            string    `json:"type"`
	DurationMinutes int64     `json:"duration"`
	Intensity       string    `json:"intensity"`
	DateTime        time.Time `json:"date_time"`
}

type CreateReportRequest struct {
	Difficulty int64     `json:"difficulty"`
	SelfHealth int64     `json:"self_health"`
	Comment    *string   `json:"comment"`
	IsSkip     bool      `json:"is_skip"`
	SkipReason *string   `json:"skip_reason"`
	Date       time.Time `json:"date"`
}

type StudentTasksResponse struct {
	Tasks []models.Task `json:"tasks"`
}

type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

type LivenessResponse struct {
	Status     string `json:"status"`
	Service    string `json:"service"`
	Host       string `json:"host"`
	Uptime     string `json:"uptime"`
	GOMAXPROCS int    `json:"gomaxprocs"`
}
