package shared

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	traced := SetTraceID(ctx)
	id := GetTraceID(traced)
	require.Len(t, id, TraceIDLength*2)
	_, err := hex.DecodeString(id)
	require.NoError(t, err)

	// The parent context is untouched.
	assert.Empty(t, GetTraceID(ctx))
}

func TestGetTraceIDIgnoresWrongType(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), TraceIDKey, 42)
	assert.Empty(t, GetTraceID(ctx))
}

func TestGenerateTraceIDIsUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool, 256)
	for i := 0; i < 256; i++ {
		id := generateTraceID()
		require.Len(t, id, TraceIDLength*2)
		require.False(t, seen[id], "duplicate trace ID %s", id)
		seen[id] = true
	}
}

func TestFallbackTraceID(t *testing.T) {
	t.Parallel()

	id := generateFallbackTraceID()
	require.Len(t, id, TraceIDLength*2)
	_, err := hex.DecodeString(id)
	assert.NoError(t, err)
}
