// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("entry_type", validateEntryType)
		_ = v.RegisterValidation("tag_condition", validateTagCondition)
	}
}

// entry_type is the two-valued enum the UI submits; it is mapped to the
// stored INCOME/EXPENSE kind at the service boundary.
func validateEntryType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateTagCondition(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "only", "exclude":
		return true
	}
	return false
}
