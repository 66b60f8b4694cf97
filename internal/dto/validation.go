package dto

import (
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators wires custom rules into gin's binding validator.
// Call once at startup.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("filename", validFileName)
	}
}

// validFileName accepts a bare file name carrying an extension. Path
// separators are rejected outright.
func validFileName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" || strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.Ext(name) != ""
}
