// Package tracer provides a lightweight tracing abstraction for the
// onboarding module.
//
// The interface keeps the onboarding service decoupled from OpenTelemetry
// APIs while still emitting spans for the two mutating operations and the
// re-verification decision inside them.
//
// Implementations:
//   - NoopTracer: for tests (zero overhead)
//   - OTelTracer: OpenTelemetry adapter for production
package tracer

import "context"

// Span represents an active trace span.
type Span interface {
	// End completes the span, recording any error that occurred.
	// End must be called exactly once, typically via defer.
	End(err error)

	// SetAttributes adds key-value pairs to the span.
	SetAttributes(attrs ...Attribute)

	// AddEvent records a timestamped event within the span.
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans for distributed tracing.
// Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a new span with the given name and attributes. The
	// returned context contains the new span and should be passed to child
	// operations.
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

// String creates a string attribute.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Bool creates a boolean attribute.
func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int64 creates an int64 attribute.
func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Span names used by the onboarding module.
const (
	SpanCreateCustomer = "onboarding.create_customer"
	SpanEnterList      = "onboarding.enter_list"
)

// Attribute keys used by the onboarding module.
const (
	AttrCustomerID = "customer_id"
	AttrBankID     = "bank_id"
	AttrAccountID  = "account_id"
	AttrPayment    = "payment"
	AttrDraw       = "reverify.draw"
	AttrFired      = "reverify.fired"
)

// Event names used by the onboarding module.
const (
	EventFeesDistributed = "fees.distributed"
	EventReverifyFired   = "reverify.fired"
)
