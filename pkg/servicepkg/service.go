// Package servicepkg provides the catalog of payable services.
package servicepkg

import "github.com/go-playground/validator/v10"

// Constants for all payable services.
const (
	Electricity = "Electricity"
	Internet    = "Internet"
	Phone       = "Phone"
	Water       = "Water"
	Insurance   = "Insurance"
)

// SupportedServices holds all the payable services.
var SupportedServices = []string{
	Electricity,
	Internet,
	Phone,
	Water,
	Insurance,
}

// IsSupportedService returns true if the service can be paid.
func IsSupportedService(service string) bool {
	for _, s := range SupportedServices {
		if s == service {
			return true
		}
	}

	return false
}

// ValidService validates whether the service is payable.
var ValidService validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return IsSupportedService(s)
	}

	return false
}
