package validator

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// WalletAddressPattern is the accepted shape of an external ledger account:
// a 0x-prefixed, 40 hex digit EVM address.
var WalletAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	validate.RegisterValidation("wallet_address", func(fl validator.FieldLevel) bool {
		return IsWalletAddress(fl.Field().String())
	})

	// Terminal mint statuses accepted from outcome reports and owner patches
	validate.RegisterValidation("badge_status", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "minted", "failed":
			return true
		}
		return false
	})
}

// IsWalletAddress reports whether s has the wallet address shape.
func IsWalletAddress(s string) bool {
	return WalletAddressPattern.MatchString(s)
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	errors := make(map[string]string)
	for _, err := range verrs {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "uuid":
			errors[field] = "Invalid UUID"
		case "wallet_address":
			errors[field] = "Invalid wallet address. Must be 0x followed by 40 hex characters"
		case "badge_status":
			errors[field] = "Invalid status. Must be: minted or failed"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}
