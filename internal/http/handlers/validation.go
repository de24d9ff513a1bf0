package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/abhinay-x/note-maker/domain"
)

const passwordSpecials = "@$!%*?&"

var registerOnce sync.Once

// RegisterValidators installs the custom rules and JSON field naming on
// gin's validator. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("strongpassword", strongPassword)
	})
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// strongPassword requires a lowercase letter, an uppercase letter, a digit
// and one of passwordSpecials.
func strongPassword(fl validator.FieldLevel) bool {
	var lower, upper, digit, special bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return lower && upper && digit && special
}

var fieldLabels = map[string]string{
	"email":        "Email",
	"password":     "Password",
	"newPassword":  "Password",
	"firstName":    "First name",
	"lastName":     "Last name",
	"otp":          "OTP",
	"tempData":     "Signup data",
	"refreshToken": "Refresh token",
	"title":        "Title",
	"content":      "Content",
	"tags":         "Tags",
}

func fieldLabel(field string) string {
	if i := strings.IndexByte(field, '['); i > 0 {
		return "Each tag"
	}
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}

func fieldMessage(fe validator.FieldError) string {
	label := fieldLabel(fe.Field())
	isList := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Please enter a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", label, fe.Param())
	case "max":
		if isList {
			return fmt.Sprintf("Cannot have more than %s %s", fe.Param(), strings.ToLower(label))
		}
		return fmt.Sprintf("%s cannot exceed %s characters", label, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s digits", label, fe.Param())
	case "numeric":
		return label + " must contain only numbers"
	case "strongpassword":
		return "Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character"
	default:
		return label + " is invalid"
	}
}

// bindJSON decodes and validates the request body. On failure it writes a
// 400 envelope with field errors and returns false.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]domain.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, domain.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
		}
		failValidation(c, fields)
		return false
	}

	failValidation(c, []domain.FieldError{{Field: "body", Message: "Request body must be valid JSON"}})
	return false
}
