// Package validation provides struct-tag based validation for restkit
// configuration types, built on go-playground/validator.
//
//	type Config struct {
//	    BaseURL string `validate:"omitempty,url"`
//	}
//
//	if err := validation.Validate(&cfg); err != nil { ... }
package validation
