package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

var (
	upperRe  = regexp.MustCompile(`[A-Z]`)
	lowerRe  = regexp.MustCompile(`[a-z]`)
	digitRe  = regexp.MustCompile(`[0-9]`)
	symbolRe = regexp.MustCompile(`[^A-Za-z0-9]`)
	postalRe = regexp.MustCompile(`^\d{5}$`)
)

func newValidator() *validator.Validate {
	v := validator.New()

	// Composite password policy: min 8, upper, lower, digit, symbol.
	// The min length itself stays a `min=8` tag so its message is distinct.
	v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return upperRe.MatchString(s) &&
			lowerRe.MatchString(s) &&
			digitRe.MatchString(s) &&
			symbolRe.MatchString(s)
	})

	// French 5-digit postal code
	v.RegisterValidation("postalcode", func(fl validator.FieldLevel) bool {
		return postalRe.MatchString(fl.Field().String())
	})

	return v
}

func ValidateStruct(data interface{}) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validationErrors {
			errors[err.Field()] = getErrorMessage(err)
		}
	}

	return errors
}

// converts validator errors to the user-facing French messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "Ce champ est requis"
	case "email":
		return "Adresse e-mail invalide"
	case "min":
		if err.Field() == "Password" || err.Field() == "NewPassword" {
			return "Le mot de passe doit contenir au moins 8 caractères"
		}
		return fmt.Sprintf("Doit contenir au moins %s caractères", err.Param())
	case "max":
		return fmt.Sprintf("Doit contenir au plus %s caractères", err.Param())
	case "password":
		return "Le mot de passe doit contenir une majuscule, une minuscule, un chiffre et un caractère spécial"
	case "postalcode":
		return "Code postal invalide (5 chiffres)"
	case "eqfield":
		return "Les mots de passe ne correspondent pas"
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", ", ")
		return fmt.Sprintf("Doit être parmi : %s", options)
	case "url":
		return "URL invalide"
	case "uuid":
		return "Identifiant invalide"
	case "gte":
		return fmt.Sprintf("Doit être supérieur ou égal à %s", err.Param())
	case "gt":
		return fmt.Sprintf("Doit être supérieur à %s", err.Param())
	case "eq":
		return "Vous devez accepter les conditions d'utilisation"
	default:
		return fmt.Sprintf("Champ %s invalide", err.Field())
	}
}

// formats validation errors map into single string
func FormatValidationErrors(errors map[string]string) string {
	var msgs []string
	for field, msg := range errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}
