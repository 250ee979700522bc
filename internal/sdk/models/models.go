// Package models defines data models for the coaching service.
package models

import "time"

// Account represents a registered user, either a trainer or a student.
// Phone is the canonical digit string used as the login identifier.
type Account struct {
	ID           int64     `json:"id"`
	Phone        string    `json:"phone_number"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	IsActive     bool      `json:"is_active"`
	IsTrainer    bool      `json:"is_trainer"`
	TrainerID    *int64    `json:"trainer_id,omitempty"`
	Surname      *string   `json:"surname,omitempty"`
	Name         *string   `json:"name,omitempty"`
	Patronymic   *string   `json:"patronymic,omitempty"`
	Age          *int64    `json:"age,omitempty"`
	Weight       *float64  `json:"weight,omitempty"`
	Height       *float64  `json:"height,omitempty"`
	Gender       *string   `json:"gender,omitempty"`
	Nickname     *string   `json:"nickname,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type NewAccount struct {
	Phone        string
	PasswordHash []byte
	IsTrainer    bool
}

// AccountProfile carries the optional profile fields an account owner may
// set after registration. Nil fields are left untouched.
type AccountProfile struct {
	Surname    *string
	Name       *string
	Patronymic *string
	Age        *int64
	Weight     *float64
	Height     *float64
	Gender     *string
	Nickname   *string
}

// Task is a workout assignment created by a trainer for a student.
// Tasks are immutable after creation.
type Task struct {
	ID              int64     `json:"id"`
	TrainerID       int64     `json:"trainer_id"`
	StudentID       int64     `json:"student_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Type            string    `json:"type"`
	DurationMinutes int64     `json:"duration"`
	Intensity       string    `json:"intensity"`
	DateTime        time.Time `json:"date_time"`
	CreatedAt       time.Time `json:"created_at"`
}

type NewTask struct {
	TrainerID       int64
	StudentID       int64
	Title           string
	Description     string
	Type            string
	DurationMinutes int64
	Intensity       string
	DateTime        time.Time
}

// SummaryReport is a student's post-workout self report.
type SummaryReport struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Difficulty int64     `json:"difficulty"`
	SelfHealth int64     `json:"self_health"`
	Comment    *string   `json:"comment,omitempty"`
	IsSkip     bool      `json:"is_skip"`
	SkipReason *string   `json:"skip_reason,omitempty"`
	Date       time.Time `json:"date"`
	CreatedAt  time.Time `json:"created_at"`
}

type NewSummaryReport struct {
	UserID     int64
	Difficulty int64
	SelfHealth int64
	Comment    *string
	IsSkip     bool
	SkipReason *string
	Date       time.Time
}
