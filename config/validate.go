package config

import (
	"golang.org/x/text/language"
	"gopkg.in/go-playground/validator.v9"

	"github.com/neuronlabs/jsonapi/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("langtag", isLanguageTag); err != nil {
		panic(err)
	}
	return v
}

func isLanguageTag(fl validator.FieldLevel) bool {
	_, err := language.Parse(fl.Field().String())
	return err == nil
}

func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.WrapDetf(ErrInvalidConfig, "validating config failed: %v", err)
	}
	multi := errors.MultiError{}
	for _, fieldErr := range validationErrors {
		multi = append(multi, errors.WrapDetf(ErrInvalidConfig, "field: '%s' failed on the '%s' validation", fieldErr.Namespace(), fieldErr.Tag()))
	}
	return multi
}
