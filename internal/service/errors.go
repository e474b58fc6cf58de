package service

import (
	"time"

	"gatormarket/internal/auth"
	"gatormarket/internal/models"
)

// FieldErrors reports input problems keyed by field name.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	return "validation failed"
}

func errAccountInactive() *models.AppError {
	return &models.AppError{Code: auth.CodeAccountInactive, Message: "Account is not active"}
}

func errEmailNotVerified() *models.AppError {
	return &models.AppError{Code: auth.CodeEmailNotVerified, Message: "Please verify your email before logging in"}
}

func utcNow() time.Time {
	return time.Now().UTC()
}
