package types

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunID(t *testing.T) {
	t.Parallel()

	_, ok := RunID(context.Background())
	assert.False(t, ok)

	_, ok = RunID(WithRunID(context.Background(), ""))
	assert.False(t, ok)

	id, ok := RunID(WithRunID(context.Background(), "run-42"))
	assert.True(t, ok)
	assert.Equal(t, "run-42", id)
}
