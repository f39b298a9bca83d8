// cmd/truthguard/errors.go
package main

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// ErrorKind categorizes failures by who is at fault and whether a retry can
// help. Only InvalidInput, AuthError, QuotaExceeded and the exhausted-fallback
// cases ever surface to callers as non-200 responses.
type ErrorKind string

const (
	KindInvalidInput        ErrorKind = "invalid_input"
	KindAuthError           ErrorKind = "provider_auth"
	KindQuotaExceeded       ErrorKind = "quota_exceeded"
	KindProviderError       ErrorKind = "provider_error"
	KindProviderUnavailable ErrorKind = "provider_unavailable"
	KindProviderTimeout     ErrorKind = "provider_timeout"
	KindPersistence         ErrorKind = "persistence"
	KindInternal            ErrorKind = "internal"
)

// TruthGuardError is the application error type carried through the
// orchestrator and mapped to an HTTP status at the edge.
type TruthGuardError struct {
	Kind    ErrorKind
	Message string
	Inner   error
}

func (e *TruthGuardError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Inner)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *TruthGuardError) Unwrap() error {
	return e.Inner
}

// HTTPStatus maps an error kind to the status code returned to the client.
// Quota exhaustion uses 402 uniformly; see DESIGN.md.
func (e *TruthGuardError) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindAuthError:
		return http.StatusUnauthorized
	case KindQuotaExceeded:
		return http.StatusPaymentRequired
	case KindProviderError:
		return http.StatusBadGateway
	case KindProviderUnavailable:
		return http.StatusServiceUnavailable
	case KindProviderTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// NewError creates a new TruthGuardError
func NewError(kind ErrorKind, message string, inner error) *TruthGuardError {
	return &TruthGuardError{Kind: kind, Message: message, Inner: inner}
}

func NewInvalidInputError(message string) *TruthGuardError {
	return NewError(KindInvalidInput, message, nil)
}

func NewAuthError(message string, inner error) *TruthGuardError {
	return NewError(KindAuthError, message, inner)
}

func NewQuotaError(message string, inner error) *TruthGuardError {
	return NewError(KindQuotaExceeded, message, inner)
}

func NewProviderError(message string, inner error) *TruthGuardError {
	return NewError(KindProviderError, message, inner)
}

func NewUnavailableError(message string, inner error) *TruthGuardError {
	return NewError(KindProviderUnavailable, message, inner)
}

func NewTimeoutError(message string, inner error) *TruthGuardError {
	return NewError(KindProviderTimeout, message, inner)
}

// AsTruthGuardError extracts a *TruthGuardError from an error chain.
func AsTruthGuardError(err error) (*TruthGuardError, bool) {
	var tge *TruthGuardError
	if errors.As(err, &tge) {
		return tge, true
	}
	return nil, false
}

// ErrorEvent is a recorded error occurrence, kept in a bounded in-memory
// buffer for the diagnostics endpoint.
type ErrorEvent struct {
	Kind      ErrorKind `json:"kind"`
	Message   string    `json:"message"`
	Component string    `json:"component"`
	Time      time.Time `json:"time"`
}

// ErrorBuffer is a fixed-size ring of recent error events.
type ErrorBuffer struct {
	mu     sync.Mutex
	events []*ErrorEvent
	max    int
}

// NewErrorBuffer creates an error buffer holding up to max events.
func NewErrorBuffer(max int) *ErrorBuffer {
	if max <= 0 {
		max = 100
	}
	return &ErrorBuffer{
		events: make([]*ErrorEvent, 0, max),
		max:    max,
	}
}

// Add records an event, evicting the oldest when full.
func (b *ErrorBuffer) Add(event *ErrorEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.events) >= b.max {
		b.events = b.events[1:]
	}
	b.events = append(b.events, event)
}

// Recent returns up to count of the most recent events, newest last.
func (b *ErrorBuffer) Recent(count int) []*ErrorEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	if count <= 0 || count > len(b.events) {
		count = len(b.events)
	}
	out := make([]*ErrorEvent, count)
	copy(out, b.events[len(b.events)-count:])
	return out
}

var errorBuffer = NewErrorBuffer(100)

// RecordError logs an error, buffers it for diagnostics and bumps the error
// counter. Components call this for failures they swallow (evidence
// gathering, persistence) so those stay visible to operators.
func RecordError(component string, err error) {
	if err == nil {
		return
	}

	event := &ErrorEvent{
		Time:      time.Now(),
		Component: component,
	}
	if tge, ok := AsTruthGuardError(err); ok {
		event.Kind = tge.Kind
		event.Message = tge.Message
	} else {
		event.Kind = KindInternal
		event.Message = err.Error()
	}

	errorBuffer.Add(event)
	GetLogger().Error("%s: %v", component, err)
	IncrementCounter("errors_total")
}
