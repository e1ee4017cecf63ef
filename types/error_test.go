package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_ChainingAndHelpers(t *testing.T) {
	t.Parallel()

	root := errors.New("root")
	err := NewError(ErrPollingFailed, "status request failed").
		WithCause(root).
		WithHTTPStatus(502).
		WithProvider("azure-sora")

	assert.Equal(t, ErrPollingFailed, GetErrorCode(err))
	assert.False(t, IsRetryable(err))
	assert.True(t, errors.Is(err, root))
	assert.Contains(t, err.Error(), "status=502")
	assert.Contains(t, err.Error(), "root")
}

func TestError_WrappedStillResolves(t *testing.T) {
	t.Parallel()

	inner := NewSubmissionError("openai", 400, `{"error":"bad prompt"}`)
	wrapped := fmt.Errorf("generate: %w", inner)

	e, ok := AsError(wrapped)
	require.True(t, ok)
	assert.Equal(t, 400, e.HTTPStatus)
	assert.Equal(t, `{"error":"bad prompt"}`, e.Body)
	assert.Equal(t, KindSubmission, KindOf(wrapped))
}

func TestErrorCode_Kind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code ErrorCode
		want ErrorKind
	}{
		{ErrConfigMissing, KindConfig},
		{ErrInputMissing, KindInput},
		{ErrSubmissionRejected, KindSubmission},
		{ErrPollingFailed, KindPolling},
		{ErrGenerationFailed, KindPolling},
		{ErrGenerationCancelled, KindPolling},
		{ErrGenerationTimedOut, KindPolling},
		{ErrDownloadFailed, KindDownload},
		{ErrorCode("SOMETHING_ELSE"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.Kind())
		})
	}
}

func TestKindOf_ForeignError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, ErrorCode(""), GetErrorCode(nil))
}
