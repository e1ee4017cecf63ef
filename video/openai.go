package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/BaSui01/santavideo/types"
)

// OpenAIProvider 访问 OpenAI 风格的视频 API（Sora 2）.
// 提交: POST {base_url}/v1/videos，multipart
// 轮询: GET  {base_url}/v1/videos/{id}
// 下载: GET  {base_url}/v1/videos/{id}/content
type OpenAIProvider struct {
	httpBase
	cfg OpenAIConfig
}

// NewOpenAIProvider 创建 OpenAI 视频提供者.
func NewOpenAIProvider(cfg OpenAIConfig, logger *zap.Logger) *OpenAIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com"
	}
	if cfg.Model == "" {
		cfg.Model = "sora-2"
	}
	p := &OpenAIProvider{cfg: cfg}
	p.httpBase = newHTTPBase("openai", cfg.Timeout, logger, func(h http.Header) {
		if cfg.UseAPIKeyHeader {
			h.Set("api-key", cfg.APIKey)
			return
		}
		h.Set("Authorization", "Bearer "+cfg.APIKey)
	})
	return p
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) DefaultMaxAttempts() int { return 120 }

var openAIStatuses = map[string]JobStatus{
	"queued":      StatusQueued,
	"in_progress": StatusRunning,
	"completed":   StatusSucceeded,
	"failed":      StatusFailed,
	"cancelled":   StatusCancelled,
}

type openAIVideo struct {
	ID       string          `json:"id"`
	Object   string          `json:"object,omitempty"`
	Status   string          `json:"status"`
	Progress int             `json:"progress,omitempty"`
	Error    json.RawMessage `json:"error,omitempty"`
}

func (p *OpenAIProvider) videosURL(path string) string {
	return strings.TrimRight(p.cfg.BaseURL, "/") + "/v1/videos" + path
}

// Submit 以 input_reference 上传源图像.
func (p *OpenAIProvider) Submit(ctx context.Context, req *GenerationRequest) (*Submission, error) {
	if err := req.Validate(); err != nil {
		return nil, types.NewInputError("invalid generation request", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	model := req.Model
	if model == "" {
		model = p.cfg.Model
	}
	fields := []struct{ k, v string }{
		{"prompt", req.Prompt},
		{"model", model},
	}
	if req.Resolution != "" {
		fields = append(fields, struct{ k, v string }{"resolution", req.Resolution})
	}
	if req.Duration > 0 {
		fields = append(fields, struct{ k, v string }{"seconds", strconv.Itoa(req.Duration)})
	}
	for _, f := range fields {
		if err := writer.WriteField(f.k, f.v); err != nil {
			return nil, multipartError(p.Name(), err)
		}
	}
	if err := writeFilePart(writer, "input_reference", req.Image); err != nil {
		return nil, multipartError(p.Name(), err)
	}
	if err := writer.Close(); err != nil {
		return nil, multipartError(p.Name(), err)
	}

	var resp openAIVideo
	if err := p.submit(ctx, p.videosURL(""), &buf, writer.FormDataContentType(), &resp); err != nil {
		return nil, err
	}
	if resp.ID == "" {
		return nil, types.NewError(types.ErrSubmissionRejected, "response carried no video id").
			WithProvider(p.Name())
	}

	job := NewJob(resp.ID)
	if resp.Status != "" {
		_ = job.Apply(toOpenAIUpdate(&resp))
	}
	return &Submission{Job: job}, nil
}

func toOpenAIUpdate(v *openAIVideo) *StatusUpdate {
	return &StatusUpdate{
		Status:    normalizeStatus(openAIStatuses, v.Status),
		RawStatus: v.Status,
		Error:     errorDetail(v.Error),
	}
}

// Poll 查询一次视频对象状态.
func (p *OpenAIProvider) Poll(ctx context.Context, job *Job) (*StatusUpdate, error) {
	var resp openAIVideo
	if err := p.getStatus(ctx, p.videosURL("/"+url.PathEscape(job.ID)), &resp); err != nil {
		return nil, err
	}
	return toOpenAIUpdate(&resp), nil
}

// ResolveDownloadURL 返回视频对象的 content 子资源.
func (p *OpenAIProvider) ResolveDownloadURL(job *Job) (string, error) {
	if job.ID == "" {
		return "", types.NewError(types.ErrDownloadFailed, "job has no id").WithProvider(p.Name())
	}
	return fmt.Sprintf("%s/content", p.videosURL("/"+url.PathEscape(job.ID))), nil
}

func multipartError(provider string, err error) error {
	return types.NewError(types.ErrSubmissionRejected, "failed to build multipart body").
		WithProvider(provider).WithCause(err)
}
