package validator

import (
	"futsal/pkg/logger"
	"futsal/pkg/model"
	"futsal/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// bcrypt ignores everything past 72 bytes.
const maxPasswordBytes = 72

type UserValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewUserValidator(log *logger.Logger) *UserValidator {
	return &UserValidator{
		validate: validation.New(),
		logger:   log,
	}
}

func (v *UserValidator) ValidateRegistration(req *model.RegisterRequest) error {
	if err := validation.Struct(v.validate, req); err != nil {
		return err
	}
	if len(req.Password) > maxPasswordBytes {
		return validation.FieldErrors{{Field: "password", Message: "password must be at most 72 bytes"}}
	}
	return nil
}

func (v *UserValidator) Validate(user *model.User) error {
	return validation.Struct(v.validate, user)
}
