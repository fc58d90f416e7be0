package registry

import "fmt"

// SchemaError reports a malformed or missing field in a task or dataset
// declaration. It wraps the underlying cause.
type SchemaError struct {
	Subject string // task or dataset name, may be empty
	Source  string // document location, may be empty
	Err     error
}

func (e *SchemaError) Error() string {
	msg := "schema error"
	if e.Subject != "" {
		msg += fmt.Sprintf(" in %q", e.Subject)
	}
	if e.Source != "" {
		msg += fmt.Sprintf(" (%s)", e.Source)
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// UnresolvedReferenceError reports a symbolic reference with no binding in
// the variable context.
type UnresolvedReferenceError struct {
	Ref     string
	Subject string
	Source  string
}

func (e *UnresolvedReferenceError) Error() string {
	msg := fmt.Sprintf("unresolved reference %q", e.Ref)
	if e.Subject != "" {
		msg += fmt.Sprintf(" in %q", e.Subject)
	}
	if e.Source != "" {
		msg += fmt.Sprintf(" (%s)", e.Source)
	}
	return msg
}

// DuplicateTaskNameError reports two task declarations sharing one name.
type DuplicateTaskNameError struct {
	Name          string
	First, Second string // document locations, may be empty
}

func (e *DuplicateTaskNameError) Error() string {
	msg := fmt.Sprintf("duplicate task name %q", e.Name)
	if e.First != "" && e.Second != "" {
		msg += fmt.Sprintf(" (declared at %s and %s)", e.First, e.Second)
	}
	return msg
}

// NotFoundError reports a lookup for a task name that is not in the registry.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %q not found in registry", e.Name)
}
