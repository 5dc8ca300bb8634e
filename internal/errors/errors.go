package errors

import "fmt"

// NotFoundError reports a missing vehicle, client or rule where one was
// required.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func NewNotFound(resource, key string) *NotFoundError {
	return &NotFoundError{Resource: resource, Key: key}
}

// NoOpenStayError reports an exit requested for a vehicle with no open
// permanence.
type NoOpenStayError struct {
	Plate string
}

func (e *NoOpenStayError) Error() string {
	return fmt.Sprintf("no open stay for plate %q", e.Plate)
}

// NoActiveRuleError reports that no price rule was active at exit time.
type NoActiveRuleError struct{}

func (e *NoActiveRuleError) Error() string {
	return "no active price rule"
}

// InvariantViolationError reports dataset states that the operations never
// produce, such as two open stays for one vehicle. Seen only with hand-edited
// data files.
type InvariantViolationError struct {
	Message string
}

func (e *InvariantViolationError) Error() string {
	return e.Message
}

func NewInvariantViolation(format string, args ...any) *InvariantViolationError {
	return &InvariantViolationError{Message: fmt.Sprintf(format, args...)}
}
