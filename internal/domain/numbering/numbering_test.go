package numbering

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	max int64
	err error
}

func (s *stubSource) MaxInvoiceSequence(ctx context.Context) (int64, error) {
	return s.max, s.err
}

func TestSequence(t *testing.T) {
	t.Run("parses sequential numbers", func(t *testing.T) {
		n, ok := Sequence("INV-000123")
		assert.True(t, ok)
		assert.Equal(t, int64(123), n)
	})

	t.Run("parses unpadded numbers", func(t *testing.T) {
		n, ok := Sequence("INV-7")
		assert.True(t, ok)
		assert.Equal(t, int64(7), n)
	})

	t.Run("rejects non-matching numbers", func(t *testing.T) {
		for _, s := range []string{"", "INV-", "INV-abc", "inv-000123", "X-000123", "INV-123x"} {
			_, ok := Sequence(s)
			assert.False(t, ok, s)
		}
	})
}

func TestSequentialPolicy(t *testing.T) {
	t.Run("starts at one on empty set", func(t *testing.T) {
		p := NewSequentialPolicy(&stubSource{max: 0})

		n, err := p.Next(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "INV-000001", n)
	})

	t.Run("increments the highest existing sequence", func(t *testing.T) {
		p := NewSequentialPolicy(&stubSource{max: 122})

		n, err := p.Next(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "INV-000123", n)
	})

	t.Run("pads to six digits without truncating", func(t *testing.T) {
		p := NewSequentialPolicy(&stubSource{max: 9999999})

		n, err := p.Next(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "INV-10000000", n)
	})

	t.Run("propagates source errors", func(t *testing.T) {
		p := NewSequentialPolicy(&stubSource{err: assert.AnError})

		_, err := p.Next(context.Background())
		assert.Error(t, err)
	})
}

func TestTimestampPolicy(t *testing.T) {
	t.Run("formats the clock in the configured zone", func(t *testing.T) {
		at := time.Date(2024, 3, 15, 14, 30, 45, 0, time.UTC)
		p, err := NewTimestampPolicyAt("UTC", func() time.Time { return at })
		require.NoError(t, err)

		n, err := p.Next(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "INV-20240315143045", n)
	})

	t.Run("converts to the configured zone", func(t *testing.T) {
		at := time.Date(2024, 3, 15, 14, 30, 45, 0, time.UTC)
		p, err := NewTimestampPolicyAt("America/Toronto", func() time.Time { return at })
		require.NoError(t, err)

		n, err := p.Next(context.Background())
		require.NoError(t, err)
		// UTC-4 during DST
		assert.Equal(t, "INV-20240315103045", n)
	})

	t.Run("rejects unknown zones", func(t *testing.T) {
		_, err := NewTimestampPolicy("Not/AZone")
		assert.Error(t, err)
	})

	t.Run("same second yields the same number", func(t *testing.T) {
		at := time.Date(2024, 3, 15, 14, 30, 45, 0, time.UTC)
		p, err := NewTimestampPolicyAt("UTC", func() time.Time { return at })
		require.NoError(t, err)

		a, _ := p.Next(context.Background())
		b, _ := p.Next(context.Background())
		assert.Equal(t, a, b)
	})

	t.Run("timestamp numbers do not poison the sequential scan", func(t *testing.T) {
		_, ok := Sequence("INV-20240315143045")
		assert.False(t, ok)
	})
}
