package shipment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTrackingNumber(t *testing.T) {
	date := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "FSA20260830ABCD1234", FormatTrackingNumber(NumberAuto, date, "ABCD1234"))
	assert.Equal(t, "FSM20260830ABCD1234", FormatTrackingNumber(NumberManual, date, "ABCD1234"))
}

func TestGenerateShape(t *testing.T) {
	gen := NewTrackingNumberGenerator(newFakeRepo())

	number, err := gen.Generate(context.Background(), NumberAuto)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(number, "FSA"))
	assert.Len(t, number, len("FSA")+8+8)

	suffix := number[len(number)-8:]
	for _, r := range suffix {
		assert.Contains(t, trackingCharset, string(r), "suffix must stay within the base36 alphabet")
	}
}

func TestGenerateAvoidsExistingNumbers(t *testing.T) {
	repo := newFakeRepo()
	gen := NewTrackingNumberGenerator(repo)

	// Occupy a number, then verify freshly generated ones never collide.
	first, err := gen.Generate(context.Background(), NumberAuto)
	require.NoError(t, err)
	repo.taken[first] = true

	for i := 0; i < 50; i++ {
		number, err := gen.Generate(context.Background(), NumberAuto)
		require.NoError(t, err)
		assert.NotEqual(t, first, number)
		assert.False(t, repo.taken[number])
		repo.taken[number] = true
	}
}

func TestGenerateDistinctAcrossCalls(t *testing.T) {
	gen := NewTrackingNumberGenerator(newFakeRepo())

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		number, err := gen.Generate(context.Background(), NumberManual)
		require.NoError(t, err)
		assert.False(t, seen[number], "generated duplicate %q", number)
		seen[number] = true
	}
}
