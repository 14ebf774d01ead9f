package customvalidator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// CustomValidator é a ponte entre o validator/v10 e a interface echo.Validator.
type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func New() *CustomValidator {
	v := validator.New()
	if err := RegisterCustomValidations(v); err != nil {
		panic("erro ao registrar validações customizadas: " + err.Error())
	}
	return &CustomValidator{validator: v}
}

func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("training_type", isTrainingType); err != nil {
		return err
	}
	if err := v.RegisterValidation("class_status", isClassStatus); err != nil {
		return err
	}
	return nil
}

func isTrainingType(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case "initial", "refresher":
		return true
	}
	return false
}

// Status informado pelo usuário para turmas de formação inicial.
func isClassStatus(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case "", "in_progress", "completed":
		return true
	}
	return false
}
