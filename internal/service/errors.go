package service

import (
	"errors"

	"github.com/jobtracker/jobtracker-api/internal/domain/validation"
	apperrors "github.com/jobtracker/jobtracker-api/internal/errors"
)

// asValidationError converts a field validation failure into an AppError so the
// transport layer can render it as a 400.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	var fe *validation.Error
	if errors.As(err, &fe) {
		return apperrors.ValidationField(fe.Field, fe.Message)
	}
	return apperrors.Validation(err.Error())
}
