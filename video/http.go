package video

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/santavideo/internal/tlsutil"
	"github.com/BaSui01/santavideo/types"
)

// RequestIDHeader carries the per-run correlation ID on every outbound request.
const RequestIDHeader = "X-Client-Request-Id"

const userAgent = "santavideo/1.0"

// httpBase holds the transport shared by all provider shapes.
type httpBase struct {
	name      string
	client    *http.Client
	logger    *zap.Logger
	authorize func(h http.Header)
}

func newHTTPBase(name string, timeout time.Duration, logger *zap.Logger, authorize func(http.Header)) httpBase {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := tlsutil.WithHeaders(tlsutil.SecureHTTPClient(timeout), map[string]string{
		"User-Agent": userAgent,
	})
	return httpBase{
		name:      name,
		client:    client,
		logger:    logger.With(zap.String("provider", name)),
		authorize: authorize,
	}
}

func (b *httpBase) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if b.authorize != nil {
		b.authorize(req.Header)
	}
	if id, ok := types.RunID(ctx); ok {
		req.Header.Set(RequestIDHeader, id)
	}
	return req, nil
}

// roundTrip sends req and reads the whole response body.
func (b *httpBase) roundTrip(req *http.Request) (int, []byte, error) {
	resp, err := b.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, data, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// submit POSTs a job and decodes the JSON answer into out.
func (b *httpBase) submit(ctx context.Context, url string, body io.Reader, contentType string, out any) error {
	req, err := b.newRequest(ctx, http.MethodPost, url, body)
	if err != nil {
		return types.NewError(types.ErrSubmissionRejected, "failed to build submission").
			WithProvider(b.name).WithCause(err)
	}
	req.Header.Set("Content-Type", contentType)

	b.logger.Debug("submitting video job", zap.String("url", url))
	status, data, err := b.roundTrip(req)
	if err != nil {
		return types.NewError(types.ErrSubmissionRejected, "submission request failed").
			WithProvider(b.name).WithHTTPStatus(status).WithCause(err)
	}
	if !isSuccess(status) {
		return types.NewSubmissionError(b.name, status, string(data))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return types.NewError(types.ErrSubmissionRejected, "failed to decode submission response").
			WithProvider(b.name).WithHTTPStatus(status).WithBody(string(data)).WithCause(err)
	}
	return nil
}

// getStatus GETs a status resource and decodes it into out.
func (b *httpBase) getStatus(ctx context.Context, url string, out any) error {
	req, err := b.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return types.NewError(types.ErrPollingFailed, "failed to build status request").
			WithProvider(b.name).WithCause(err)
	}

	status, data, err := b.roundTrip(req)
	if err != nil {
		return types.NewError(types.ErrPollingFailed, "status request failed").
			WithProvider(b.name).WithHTTPStatus(status).WithCause(err)
	}
	if !isSuccess(status) {
		return types.NewError(types.ErrPollingFailed, "status request rejected").
			WithProvider(b.name).WithHTTPStatus(status).WithBody(string(data))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return types.NewError(types.ErrPollingFailed, "failed to decode status response").
			WithProvider(b.name).WithHTTPStatus(status).WithBody(string(data)).WithCause(err)
	}
	return nil
}

// Download fetches the whole video into memory.
func (b *httpBase) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := b.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, types.NewError(types.ErrDownloadFailed, "failed to build download request").
			WithProvider(b.name).WithCause(err)
	}

	b.logger.Debug("downloading video", zap.String("url", url))
	status, data, err := b.roundTrip(req)
	if err != nil {
		return nil, types.NewError(types.ErrDownloadFailed, "download request failed").
			WithProvider(b.name).WithHTTPStatus(status).WithCause(err)
	}
	if !isSuccess(status) {
		return nil, types.NewError(types.ErrDownloadFailed, "download rejected").
			WithProvider(b.name).WithHTTPStatus(status).WithBody(truncate(string(data), 512))
	}
	return data, nil
}

// errorDetail renders an embedded error payload that may be a string, an
// object carrying "message", or anything else.
func errorDetail(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		if obj.Code != "" {
			return obj.Code + ": " + obj.Message
		}
		return obj.Message
	}
	return trimmed
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// normalizeStatus maps a provider's word onto JobStatus. Unknown words count
// as running so the poll loop keeps going.
func normalizeStatus(vocab map[string]JobStatus, raw string) JobStatus {
	if s, ok := vocab[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return StatusRunning
}
