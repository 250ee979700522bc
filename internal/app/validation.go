package app

import (
	"strings"
	"unicode/utf8"

	"github.com/fitcoach/coaching-service/internal/sdk/phone"
)

const (
	// Minimum password length in characters, not bytes: a Cyrillic
	// password is counted the same way the user typed it.
	minPasswordLength = 6

	// bcrypt only hashes the first 72 bytes, longer input is rejected
	// up front instead of erroring inside the hash service.
	maxPasswordBytes = 72
)

// validateRegisterInput checks the registration payload and normalizes the
// phone number. The returned phone is only meaningful when errCode is empty.
func validateRegisterInput(req RegisterRequest) (normalizedPhone, errCode string, details map[string]string) {
	validationErrors := make(map[string]string)

	if strings.TrimSpace(req.PhoneNumber) == "" {
		validationErrors["phone_number"] = "phone_number_required"
	}
	if req.Password == "" {
		validationErrors["password"] = "password_required"
	}
	if len(validationErrors) > 0 {
		return "", ErrMissingFields, validationErrors
	}

	normalized, ok := phone.Normalize(req.PhoneNumber)
	if !ok {
		return "", ErrInvalidPhone, nil
	}

	if utf8.RuneCountInString(req.Password) < minPasswordLength {
		return "", ErrPasswordTooShort, nil
	}
	if len(req.Password) > maxPasswordBytes {
		return "", ErrPasswordTooLong, nil
	}

	return normalized, "", nil
}

// validateLoginInput checks the login payload and normalizes the phone.
func validateLoginInput(req LoginRequest) (normalizedPhone, errCode string, details map[string]string) {
	validationErrors := make(map[string]string)

	if strings.TrimSpace(req.PhoneNumber) == "" {
		validationErrors["phone_number"] = "phone_number_required"
	}
	if req.Password == "" {
		validationErrors["password"] = "password_required"
	}
	if len(validationErrors) > 0 {
		return "", ErrMissingFields, validationErrors
	}

	normalized, ok := phone.Normalize(req.PhoneNumber)
	if !ok {
		return "", ErrInvalidPhone, nil
	}

	return normalized, "", nil
}

// validateCreateTaskInput requires the full task shape: participant, text
// fields and the schedule fields.
func validateCreateTaskInput(req CreateTaskRequest) (errCode string, details map[string]string) {
	validationErrors := make(map[string]string)

	if req.StudentID == 0 {
		validationErrors["student_id"] = "student_id_required"
	}
	if strings.TrimSpace(req.Title) == "" {
		validationErrors["title"] = "title_required"
	}
	if strings.TrimSpace(req.Description) == "" {
		validationErrors["description"] = "description_required"
	}
	if strings.TrimSpace(req.Type) == "" {
		validationErrors["type"] = "type_required"
	}
	if req.DurationMinutes <= 0 {
		validationErrors["duration"] = "duration_required"
	}
	if strings.TrimSpace(req.Intensity) == "" {
		validationErrors["intensity"] = "intensity_required"
	}
	if req.DateTime.IsZero() {
		validationErrors["date_time"] = "date_time_required"
	}

	if len(validationErrors) == 0 {
		return "", nil
	}

	return ErrMissingFields, validationErrors
}

// validateCreateReportInput enforces the skip invariant: a skipped workout
// must carry a reason.
func validateCreateReportInput(req CreateReportRequest) (errCode string, details map[string]string) {
	if req.IsSkip && (req.SkipReason == nil || strings.TrimSpace(*req.SkipReason) == "") {
		return ErrSkipReasonRequired, map[string]string{"skip_reason": "skip_reason_required"}
	}
	return "", nil
}
