package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	ErrUnmarshal          = "invalid_request_body"
	ErrMissingFields      = "missing_required_fields"
	ErrInvalidPhone       = "invalid_phone_number"
	ErrPasswordTooShort   = "password_too_short"
	ErrPasswordTooLong    = "password_too_long"
	ErrSkipReasonRequired = "skip_reason_required"
	ErrUserExists         = "user_already_exists"
	ErrInvalidCredentials = "invalid_credentials"
	ErrAccountInactive    = "account_inactive"
	ErrUnauthorized       = "unauthorized"
	ErrForbidden          = "forbidden"
	ErrExpiredToken       = "expired_token"
	ErrInvalidToken       = "invalid_token"
	ErrMissingAuthHeader  = "missing_authorization_header"
	ErrInvalidAuthHeader  = "invalid_authorization_header"
	ErrStudentNotFound    = "student_not_found"
	ErrUserNotFound       = "user_not_found"
	ErrHashPassword       = "internal_hash_error"
	ErrCreateAccount      = "internal_create_account_error"
	ErrProcessLogin       = "internal_login_error"
	ErrGenerateTokens     = "internal_generate_tokens_error"
	ErrRetrieveAccount    = "internal_retrieve_account_error"
	ErrUpdateProfile      = "internal_update_profile_error"
	ErrRetrieveStudents   = "internal_retrieve_students_error"
	ErrCreateTask         = "internal_create_task_error"
	ErrRetrieveTasks      = "internal_retrieve_tasks_error"
	ErrCreateReport       = "internal_create_report_error"
	ErrRetrieveReports    = "internal_retrieve_reports_error"
)

var errorStatusMap = map[string]int{
	ErrUnmarshal:          http.StatusBadRequest,
	ErrMissingFields:      http.StatusBadRequest,
	ErrInvalidPhone:       http.StatusBadRequest,
	ErrPasswordTooShort:   http.StatusBadRequest,
	ErrPasswordTooLong:    http.StatusBadRequest,
	ErrSkipReasonRequired: http.StatusBadRequest,
	ErrUserExists:         http.StatusConflict,
	ErrInvalidCredentials: http.StatusUnauthorized,
	ErrUnauthorized:       http.StatusUnauthorized,
	ErrExpiredToken:       http.StatusUnauthorized,
	ErrInvalidToken:       http.StatusUnauthorized,
	ErrMissingAuthHeader:  http.StatusUnauthorized,
	ErrInvalidAuthHeader:  http.StatusUnauthorized,
	ErrAccountInactive:    http.StatusForbidden,
	ErrForbidden:          http.StatusForbidden,
	ErrStudentNotFound:    http.StatusNotFound,
	ErrUserNotFound:       http.StatusNotFound,
	ErrHashPassword:       http.StatusInternalServerError,
	ErrCreateAccount:      http.StatusInternalServerError,
	ErrProcessLogin:       http.StatusInternalServerError,
	ErrGenerateTokens:     http.StatusInternalServerError,
	ErrRetrieveAccount:    http.StatusInternalServerError,
	ErrUpdateProfile:      http.StatusInternalServerError,
	ErrRetrieveStudents:   http.StatusInternalServerError,
	ErrCreateTask:         http.StatusInternalServerError,
	ErrRetrieveTasks:      http.StatusInternalServerError,
	ErrCreateReport:       http.StatusInternalServerError,
	ErrRetrieveReports:    http.StatusInternalServerError,
}

func statusForError(code string) int {
	if status, ok := errorStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, code string, details map[string]string) {
	c.JSON(statusForError(code), ErrorResponse{Error: code, Details: details})
}
