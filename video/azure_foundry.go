package video

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/BaSui01/santavideo/types"
)

// AzureFoundryProvider 以单次调用形态访问 Azure AI Foundry 视频端点.
// 提交: POST {endpoint}，JSON body，api-key 信头
// 轮询: GET {endpoint}/openai/operations/{id}?api-version=...
type AzureFoundryProvider struct {
	httpBase
	cfg AzureFoundryConfig
}

// NewAzureFoundryProvider 创建单次调用形态的提供者.
func NewAzureFoundryProvider(cfg AzureFoundryConfig, logger *zap.Logger) *AzureFoundryProvider {
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2024-08-01-preview"
	}
	p := &AzureFoundryProvider{cfg: cfg}
	p.httpBase = newHTTPBase("azure-foundry", cfg.Timeout, logger, func(h http.Header) {
		h.Set("api-key", cfg.APIKey)
	})
	return p
}

func (p *AzureFoundryProvider) Name() string { return "azure-foundry" }

func (p *AzureFoundryProvider) DefaultMaxAttempts() int { return 60 }

var foundryStatuses = map[string]JobStatus{
	"notstarted": StatusQueued,
	"queued":     StatusQueued,
	"running":    StatusRunning,
	"inprogress": StatusRunning,
	"succeeded":  StatusSucceeded,
	"completed":  StatusSucceeded,
	"failed":     StatusFailed,
	"cancelled":  StatusCancelled,
	"canceled":   StatusCancelled,
}

type foundryImage struct {
	Data     string `json:"data"`
	MimeType string `json:"mimeType"`
}

type foundryRequest struct {
	Prompt       string       `json:"prompt"`
	Image        foundryImage `json:"image"`
	Duration     int          `json:"duration"`
	AspectRatio  string       `json:"aspectRatio"`
	Quality      string       `json:"quality"`
	IncludeAudio bool         `json:"includeAudio"`
}

type foundrySubmitResponse struct {
	ID       string `json:"id"`
	Status   string `json:"status,omitempty"`
	VideoURL string `json:"videoUrl,omitempty"`
}

type foundryStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Result *struct {
		VideoURL string `json:"videoUrl"`
	} `json:"result,omitempty"`
	Error json.RawMessage `json:"error,omitempty"`
}

// Submit 发送 JSON 请求；返回 id 时进入轮询，返回 videoUrl 时直接下载.
func (p *AzureFoundryProvider) Submit(ctx context.Context, req *GenerationRequest) (*Submission, error) {
	if err := req.Validate(); err != nil {
		return nil, types.NewInputError("invalid generation request", err)
	}

	body := foundryRequest{
		Prompt: req.Prompt,
		Image: foundryImage{
			Data:     base64.StdEncoding.EncodeToString(req.Image.Data),
			MimeType: req.Image.MIMEType,
		},
		Duration:     req.Duration,
		AspectRatio:  req.AspectRatio,
		Quality:      req.Quality,
		IncludeAudio: req.IncludeAudio,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, types.NewError(types.ErrSubmissionRejected, "failed to encode request").
			WithProvider(p.Name()).WithCause(err)
	}

	p.logger.Debug("foundry submission",
		zap.String("deployment", p.cfg.DeploymentName),
		zap.Int("image_bytes", len(req.Image.Data)),
	)

	var resp foundrySubmitResponse
	if err := p.submit(ctx, p.cfg.Endpoint, bytes.NewReader(payload), "application/json", &resp); err != nil {
		return nil, err
	}

	switch {
	case resp.ID != "":
		job := NewJob(resp.ID)
		if resp.Status != "" {
			_ = job.Apply(&StatusUpdate{Status: normalizeStatus(foundryStatuses, resp.Status), RawStatus: resp.Status})
		}
		return &Submission{Job: job}, nil
	case resp.VideoURL != "":
		return &Submission{InlineURL: resp.VideoURL}, nil
	default:
		return nil, types.NewError(types.ErrSubmissionRejected, "response carried neither id nor videoUrl").
			WithProvider(p.Name())
	}
}

func (p *AzureFoundryProvider) statusURL(id string) string {
	return fmt.Sprintf("%s/openai/operations/%s?api-version=%s",
		strings.TrimRight(p.cfg.Endpoint, "/"), url.PathEscape(id), url.QueryEscape(p.cfg.APIVersion))
}

// Poll 查询一次操作状态.
func (p *AzureFoundryProvider) Poll(ctx context.Context, job *Job) (*StatusUpdate, error) {
	var resp foundryStatusResponse
	if err := p.getStatus(ctx, p.statusURL(job.ID), &resp); err != nil {
		return nil, err
	}

	u := &StatusUpdate{
		Status:    normalizeStatus(foundryStatuses, resp.Status),
		RawStatus: resp.Status,
		Error:     errorDetail(resp.Error),
	}
	if resp.Result != nil {
		u.ResultURL = resp.Result.VideoURL
	}
	// 成功但尚未附带 result.videoUrl 时继续轮询
	if u.Status == StatusSucceeded && u.ResultURL == "" {
		u.Status = StatusRunning
	}
	return u, nil
}

// ResolveDownloadURL 返回操作结果中的 videoUrl.
func (p *AzureFoundryProvider) ResolveDownloadURL(job *Job) (string, error) {
	if job.ResultURL == "" {
		return "", types.NewError(types.ErrDownloadFailed, "succeeded operation carried no result.videoUrl").
			WithProvider(p.Name())
	}
	return job.ResultURL, nil
}
