package entity

import (
	"context"
	"strings"
	"time"

	"gescom/internal/core/apperror"
	"gescom/internal/core/id"
)

// Status is the lifecycle state of a business document.
type Status string

const (
	// StatusPending - created but not yet applied to stock
	StatusPending Status = "pending"
	// StatusCompleted - applied to stock, immutable
	StatusCompleted Status = "completed"
	// StatusCancelled - reversed; terminal state
	StatusCancelled Status = "cancelled"
)

// Document is the base type for business transactions.
// Examples: Purchase, Sale.
type Document struct {
	BaseDocument

	// Number is the document number (auto-generated, unique within type)
	Number string `db:"number" json:"number"`

	// Date is the business date of the document
	Date time.Time `db:"date" json:"date"`

	// Status is the lifecycle state. Documents are created completed
	// and may transition to cancelled exactly once.
	Status Status `db:"status" json:"status"`

	// CancelledAt is set when the document is cancelled
	CancelledAt *time.Time `db:"cancelled_at" json:"cancelledAt,omitempty"`

	// Notes is an optional user comment; cancellation reasons are
	// prepended here
	Notes string `db:"notes" json:"notes,omitempty"`
}

// NewDocument creates a new Document with generated ID, dated now,
// in completed state.
func NewDocument() Document {
	return Document{
		BaseDocument: NewBaseDocument(),
		Date:         time.Now().UTC(),
		Status:       StatusCompleted,
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}

	return nil
}

// IsCancelled reports whether the document has been cancelled.
func (d *Document) IsCancelled() bool {
	return d.Status == StatusCancelled
}

// CanCancel checks the completed→cancelled transition guard.
func (d *Document) CanCancel(entity string) error {
	if d.Status == StatusCancelled {
		return apperror.NewAlreadyCancelled(entity, d.ID.String())
	}
	if d.Status != StatusCompleted {
		return apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			"only completed documents can be cancelled",
		).WithDetail("document_id", d.ID.String())
	}
	return nil
}

// MarkCancelled transitions the document to cancelled and prepends the
// reason to notes.
func (d *Document) MarkCancelled(reason string) {
	now := time.Now().UTC()
	d.Status = StatusCancelled
	d.CancelledAt = &now
	if reason != "" {
		if d.Notes != "" {
			d.Notes = "Cancelled: " + reason + "\n" + d.Notes
		} else {
			d.Notes = "Cancelled: " + reason
		}
	}
	d.Touch()
}

// IsBackdated checks if document date is in the past.
func (d *Document) IsBackdated() bool {
	return d.Date.Before(time.Now().UTC().Truncate(24 * time.Hour))
}

// GetID returns the document ID (Recordable interface).
func (d *Document) GetID() id.ID {
	return d.ID
}

// CancelReason extracts the most recent cancellation reason from notes,
// or empty string if none was given.
func (d *Document) CancelReason() string {
	if !d.IsCancelled() {
		return ""
	}
	if rest, ok := strings.CutPrefix(d.Notes, "Cancelled: "); ok {
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			return rest[:i]
		}
		return rest
	}
	return ""
}
