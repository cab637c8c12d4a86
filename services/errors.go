package services

import "errors"

// Общие ошибки сервисного слоя, используемые в маппинге HTTP.
var (
	// Ресурс не найден
	ErrBookingNotFound = errors.New("booking not found")

	// Ошибки валидации
	ErrFacilityRequired        = errors.New("facility name is required")
	ErrCourtNumberInvalid      = errors.New("court number must be positive")
	ErrParticipantNameRequired = errors.New("participant name is required")
	ErrInvalidDate             = errors.New("date must look like YYYY-MM-DD")
	ErrInvalidTime             = errors.New("time must look like HH:MM")

	// Ошибки аутентификации
	ErrInvalidCredentials = errors.New("invalid username or password")
)
