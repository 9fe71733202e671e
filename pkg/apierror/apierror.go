// Package apierror defines the coded domain errors shared by the validation
// and storage layers. Each error carries a machine-readable code that the
// response builder resolves to an HTTP status via the code table.
package apierror

import "fmt"

// Error codes understood by the code table.
const (
	CodeUnknown     = "000" // catch-all, maps to 500
	CodeNotFound    = "100" // maps to 404
	CodeDuplicate   = "101" // maps to 409
	CodeValidation  = "200" // maps to 400
	CodeMalformedID = "201" // maps to 400
)

// Error is a coded domain error. Details and Resources are optional; the
// response builder substitutes defaults when they are empty.
type Error struct {
	Code      string
	Details   string
	Resources []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error %s: %s", e.Code, e.Details)
}

// New builds an Error with an explicit code.
func New(code, details string, resources ...string) *Error {
	return &Error{Code: code, Details: details, Resources: resources}
}

// NotFound reports that the requested resource does not exist.
func NotFound(resources ...string) *Error {
	return New(CodeNotFound, "", resources...)
}

// Duplicate reports that a resource with the same derived identifier already
// exists in the collection.
func Duplicate(resources ...string) *Error {
	return New(CodeDuplicate, "", resources...)
}

// Validation reports a missing required field or an un-coercible value.
func Validation(details string) *Error {
	return New(CodeValidation, details)
}

// MalformedID reports an identifier that does not match the expected format.
func MalformedID(details string) *Error {
	return New(CodeMalformedID, details)
}

// Uncaught wraps anything that is not a domain error. The details stay
// generic so internal state never leaks to the caller.
func Uncaught() *Error {
	return New(CodeUnknown, "Uncaught exception in the validation or storage layer. Double check inputs.")
}
