package security

import (
	"context"
	"time"

	"gescom/internal/core/apperror"
)

// CancellationPolicy defines how far back documents may be cancelled.
// Cancelling old documents rewrites stock history, so operations may
// want to restrict it.
type CancellationPolicy interface {
	// CanCancel checks if a document with the given business date can
	// be cancelled now
	CanCancel(ctx context.Context, docDate time.Time) error
}

// WindowPolicy forbids cancelling documents older than the window.
type WindowPolicy struct {
	window time.Duration
}

// NewWindowPolicy creates a policy limiting cancellations to documents
// no older than window.
func NewWindowPolicy(window time.Duration) *WindowPolicy {
	return &WindowPolicy{window: window}
}

func (p *WindowPolicy) CanCancel(ctx context.Context, docDate time.Time) error {
	if p.window > 0 && time.Since(docDate) > p.window {
		return apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			"document is too old to cancel",
		).WithDetail("document_date", docDate.Format(time.RFC3339)).
			WithDetail("max_age_days", int(p.window.Hours()/24))
	}
	return nil
}

// OpenPolicy allows cancelling any document regardless of age.
// This matches how small operations actually work.
type OpenPolicy struct{}

func (OpenPolicy) CanCancel(ctx context.Context, docDate time.Time) error { return nil }
