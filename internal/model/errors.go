package model

import "fmt"

// ValidationError represents a failure caught before any network call.
type ValidationError struct {
	Field   string
	Value   interface{}
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation failed on %s: %s (value=%v, rule=%s)", e.Field, e.Message, e.Value, e.Rule)
	}
	return fmt.Sprintf("validation failed on %s: %s (rule=%s)", e.Field, e.Message, e.Rule)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}

// TransportError represents a non-success HTTP status from the engine.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("accounting engine returned HTTP %d: %s", e.StatusCode, e.Body)
}

// NewTransportError creates a new transport error
func NewTransportError(status int, body string) *TransportError {
	return &TransportError{StatusCode: status, Body: body}
}

// ConnectivityError represents a network-level failure reaching the engine.
// Remediation carries operator-facing guidance.
type ConnectivityError struct {
	Endpoint    string
	Remediation string
	Cause       error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("cannot reach accounting engine at %s: %v. %s", e.Endpoint, e.Cause, e.Remediation)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Cause
}

// NewConnectivityError creates a connectivity error with standard remediation text.
func NewConnectivityError(endpoint string, cause error) *ConnectivityError {
	return &ConnectivityError{
		Endpoint: endpoint,
		Remediation: "Check that the accounting application is running, that it is " +
			"listening on the expected port, and that no firewall or private-network " +
			"restriction is blocking the connection.",
		Cause: cause,
	}
}

// DomainError represents an operation the engine accepted over the wire but
// rejected, signalled by error-marker nodes in the response document.
type DomainError struct {
	Operation string
	Message   string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("accounting engine rejected %s: %s", e.Operation, e.Message)
}

// NewDomainError creates a new domain error
func NewDomainError(operation, message string) *DomainError {
	return &DomainError{Operation: operation, Message: message}
}
