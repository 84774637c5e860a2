// Package validator validates use-case input structs by tag. Use cases
// depend on the Validator interface; the go-playground/validator v10
// implementation adds a custom password length rule.
package validator
