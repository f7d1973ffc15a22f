// Package numbering derives unique, human-legible invoice numbers.
// Two policies exist: a sequential counter over the persisted invoice
// set and a timestamp policy tied to a fixed IANA zone. The policy is
// injected so tests can pin the deterministic sequential variant.
package numbering

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Prefix is shared by both numbering policies.
const Prefix = "INV-"

var sequencePattern = regexp.MustCompile(`^INV-(\d+)$`)

// Policy derives the next invoice number. Implementations do not persist
// anything; uniqueness is enforced by the store's unique constraint and
// the caller's retry-on-conflict loop.
type Policy interface {
	Next(ctx context.Context) (string, error)
}

// Sequence extracts the numeric suffix from a sequential invoice number.
// Returns false for numbers that do not match INV-<digits>, including
// timestamp-policy numbers that overflow the sequential range.
func Sequence(invoiceNumber string) (int64, bool) {
	m := sequencePattern.FindStringSubmatch(invoiceNumber)
	if m == nil {
		return 0, false
	}
	// Timestamp-policy numbers carry a 14-digit suffix; treating them as
	// sequence values would jump the counter to the year of the stamp.
	if len(m[1]) > 12 {
		return 0, false
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SequenceSource reports the highest sequential suffix currently in the
// invoice set, 0 when no sequential numbers exist.
type SequenceSource interface {
	MaxInvoiceSequence(ctx context.Context) (int64, error)
}

// SequentialPolicy issues INV-000001, INV-000002, ... by scanning the
// existing set. Safe only when number assignment is serialized; the
// store layer backs it with a uniqueness constraint and one retry.
type SequentialPolicy struct {
	source SequenceSource
}

// NewSequentialPolicy creates a sequential numbering policy backed by
// the given sequence source (normally the invoice repository).
func NewSequentialPolicy(source SequenceSource) *SequentialPolicy {
	return &SequentialPolicy{source: source}
}

func (p *SequentialPolicy) Next(ctx context.Context) (string, error) {
	max, err := p.source.MaxInvoiceSequence(ctx)
	if err != nil {
		return "", fmt.Errorf("numbering: failed to read max sequence: %w", err)
	}
	return fmt.Sprintf("%s%06d", Prefix, max+1), nil
}

// TimestampPolicy issues INV-YYYYMMDDHHMMSS in a fixed zone. Collisions
// within the same second are possible and resolved by the caller's
// conflict retry against the uniqueness constraint.
type TimestampPolicy struct {
	location *time.Location
	now      func() time.Time
}

// NewTimestampPolicy creates a timestamp numbering policy for the given
// IANA zone name, e.g. "America/Toronto".
func NewTimestampPolicy(timezone string) (*TimestampPolicy, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("numbering: invalid timezone %q: %w", timezone, err)
	}
	return &TimestampPolicy{location: loc, now: time.Now}, nil
}

// NewTimestampPolicyAt is like NewTimestampPolicy with an injectable
// clock, used by tests.
func NewTimestampPolicyAt(timezone string, now func() time.Time) (*TimestampPolicy, error) {
	p, err := NewTimestampPolicy(timezone)
	if err != nil {
		return nil, err
	}
	p.now = now
	return p, nil
}

func (p *TimestampPolicy) Next(ctx context.Context) (string, error) {
	return Prefix + p.now().In(p.location).Format("20060102150405"), nil
}
