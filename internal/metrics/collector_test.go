package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// 🧪 Collector 测试
// =============================================================================

func TestNewCollector(t *testing.T) {
	collector := NewCollector("test", zap.NewNop())

	assert.NotNil(t, collector.Registry())
	assert.NotNil(t, collector.stageTotal)
	assert.NotNil(t, collector.pollAttempts)
	assert.NotNil(t, collector.jobOutcomes)
	assert.NotNil(t, collector.downloadBytes)
}

func TestNewCollector_IndependentRegistries(t *testing.T) {
	// 相同 namespace 重复创建不会 panic
	a := NewCollector("dup", nil)
	b := NewCollector("dup", nil)
	a.RecordPoll("azure-sora", "running")

	assert.Equal(t, float64(1), testutil.ToFloat64(a.pollAttempts.WithLabelValues("azure-sora", "running")))
	assert.Equal(t, float64(0), testutil.ToFloat64(b.pollAttempts.WithLabelValues("azure-sora", "running")))
}

func TestCollector_RecordStage(t *testing.T) {
	c := NewCollector("test", zap.NewNop())

	c.RecordStage("openai", "submit", nil, 200*time.Millisecond)
	c.RecordStage("openai", "submit", errors.New("boom"), 100*time.Millisecond)
	c.RecordStage("openai", "submit", nil, 50*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.stageTotal.WithLabelValues("openai", "submit", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.stageTotal.WithLabelValues("openai", "submit", "error")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.stageDuration))
}

func TestCollector_RecordJobAndDownload(t *testing.T) {
	c := NewCollector("test", zap.NewNop())

	c.RecordJob("azure-sora", "downloaded", 90*time.Second)
	c.RecordDownload("azure-sora", 2048)
	c.RecordDownload("azure-sora", 1024)

	assert.Equal(t, float64(1), testutil.ToFloat64(c.jobOutcomes.WithLabelValues("azure-sora", "downloaded")))
	assert.Equal(t, float64(3072), testutil.ToFloat64(c.downloadBytes.WithLabelValues("azure-sora")))
}

func TestCollector_Push(t *testing.T) {
	var path, body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewCollector("santavideo", zap.NewNop())
	c.RecordJob("openai", "failed", time.Second)

	require.NoError(t, c.Push(context.Background(), srv.URL, "santavideo"))
	assert.Equal(t, "/metrics/job/santavideo", path)
	assert.NotEmpty(t, body)
}

func TestCollector_PushDisabled(t *testing.T) {
	c := NewCollector("santavideo", zap.NewNop())
	assert.NoError(t, c.Push(context.Background(), "", "santavideo"))
}

func TestCollector_PushError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewCollector("santavideo", zap.NewNop())
	c.RecordPoll("openai", "queued")
	err := c.Push(context.Background(), srv.URL, "santavideo")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "push metrics"))
}
