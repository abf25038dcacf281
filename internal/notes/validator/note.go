package validator

import (
	"futsal/pkg/logger"
	"futsal/pkg/model"
	"futsal/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type NoteValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewNoteValidator(log *logger.Logger) *NoteValidator {
	return &NoteValidator{
		validate: validation.New(),
		logger:   log,
	}
}

func (v *NoteValidator) Validate(note *model.Note) error {
	return validation.Struct(v.validate, note)
}
