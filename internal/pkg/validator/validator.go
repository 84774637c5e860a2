package validator

// Validator validates structs against their struct tags.
type Validator interface {
	// Validate returns an error describing the first rule violations found.
	Validate(data any) error
}
