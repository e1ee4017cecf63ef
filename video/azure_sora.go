package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/BaSui01/santavideo/types"
)

// AzureSoraProvider 以任务队列形态访问 Azure OpenAI Sora.
// 提交: POST {endpoint}/openai/v1/video/generations/jobs，multipart
// 轮询: GET  {endpoint}/openai/v1/video/generations/jobs/{id}
// 下载: GET  {endpoint}/openai/v1/video/generations/{generation_id}/content/video
type AzureSoraProvider struct {
	httpBase
	cfg AzureSoraConfig
}

// NewAzureSoraProvider 创建任务队列形态的提供者.
func NewAzureSoraProvider(cfg AzureSoraConfig, logger *zap.Logger) *AzureSoraProvider {
	if cfg.APIVersion == "" {
		cfg.APIVersion = "preview"
	}
	if cfg.DeploymentName == "" {
		cfg.DeploymentName = "sora"
	}
	p := &AzureSoraProvider{cfg: cfg}
	p.httpBase = newHTTPBase("azure-sora", cfg.Timeout, logger, func(h http.Header) {
		h.Set("api-key", cfg.APIKey)
	})
	return p
}

func (p *AzureSoraProvider) Name() string { return "azure-sora" }

func (p *AzureSoraProvider) DefaultMaxAttempts() int { return 120 }

var soraStatuses = map[string]JobStatus{
	"preprocessing": StatusQueued,
	"queued":        StatusQueued,
	"running":       StatusRunning,
	"processing":    StatusRunning,
	"succeeded":     StatusSucceeded,
	"completed":     StatusSucceeded,
	"failed":        StatusFailed,
	"cancelled":     StatusCancelled,
	"canceled":      StatusCancelled,
}

type soraJobResponse struct {
	ID            string             `json:"id"`
	Status        string             `json:"status"`
	Generations   []GenerationResult `json:"generations,omitempty"`
	FailureReason string             `json:"failure_reason,omitempty"`
	Error         json.RawMessage    `json:"error,omitempty"`
}

func (p *AzureSoraProvider) url(path string) string {
	return fmt.Sprintf("%s/openai/v1/video/generations%s?api-version=%s",
		strings.TrimRight(p.cfg.Endpoint, "/"), path, url.QueryEscape(p.cfg.APIVersion))
}

// Submit 构建 multipart 表单并创建任务.
func (p *AzureSoraProvider) Submit(ctx context.Context, req *GenerationRequest) (*Submission, error) {
	if err := req.Validate(); err != nil {
		return nil, types.NewInputError("invalid generation request", err)
	}

	body, contentType, err := p.buildForm(req)
	if err != nil {
		return nil, types.NewError(types.ErrSubmissionRejected, "failed to build multipart body").
			WithProvider(p.Name()).WithCause(err)
	}

	var resp soraJobResponse
	if err := p.submit(ctx, p.url("/jobs"), body, contentType, &resp); err != nil {
		return nil, err
	}
	if resp.ID == "" {
		return nil, types.NewError(types.ErrSubmissionRejected, "response carried no job id").
			WithProvider(p.Name())
	}

	job := NewJob(resp.ID)
	if resp.Status != "" {
		_ = job.Apply(p.toUpdate(&resp))
	}
	return &Submission{Job: job}, nil
}

func (p *AzureSoraProvider) buildForm(req *GenerationRequest) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	model := req.Model
	if model == "" {
		model = p.cfg.DeploymentName
	}
	variants := req.Variants
	if variants <= 0 {
		variants = 1
	}

	fields := []struct{ k, v string }{
		{"prompt", req.Prompt},
		{"height", strconv.Itoa(req.Height)},
		{"width", strconv.Itoa(req.Width)},
		{"n_seconds", strconv.Itoa(req.Duration)},
		{"n_variants", strconv.Itoa(variants)},
		{"model", model},
	}
	for _, f := range fields {
		if err := writer.WriteField(f.k, f.v); err != nil {
			return nil, "", err
		}
	}

	if len(req.Inpaint) > 0 {
		items, err := json.Marshal(req.Inpaint)
		if err != nil {
			return nil, "", err
		}
		if err := writer.WriteField("inpaint_items", string(items)); err != nil {
			return nil, "", err
		}
	}

	if err := writeFilePart(writer, "files", req.Image); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return &buf, writer.FormDataContentType(), nil
}

// writeFilePart 写入带真实 MIME 类型的文件分段（CreateFormFile 固定为 octet-stream）.
func writeFilePart(w *multipart.Writer, field string, img *Image) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, img.Name))
	h.Set("Content-Type", img.MIMEType)
	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = part.Write(img.Data)
	return err
}

func (p *AzureSoraProvider) toUpdate(resp *soraJobResponse) *StatusUpdate {
	detail := resp.FailureReason
	if detail == "" {
		detail = errorDetail(resp.Error)
	}
	return &StatusUpdate{
		Status:      normalizeStatus(soraStatuses, resp.Status),
		RawStatus:   resp.Status,
		Generations: resp.Generations,
		Error:       detail,
	}
}

// Poll 查询一次任务状态.
func (p *AzureSoraProvider) Poll(ctx context.Context, job *Job) (*StatusUpdate, error) {
	var resp soraJobResponse
	if err := p.getStatus(ctx, p.url("/jobs/"+url.PathEscape(job.ID)), &resp); err != nil {
		return nil, err
	}
	return p.toUpdate(&resp), nil
}

// ResolveDownloadURL 使用第一个 generation 构建内容地址.
func (p *AzureSoraProvider) ResolveDownloadURL(job *Job) (string, error) {
	if len(job.Generations) == 0 || job.Generations[0].ID == "" {
		return "", types.NewError(types.ErrDownloadFailed, "succeeded job carried no generations").
			WithProvider(p.Name())
	}
	return p.url("/" + url.PathEscape(job.Generations[0].ID) + "/content/video"), nil
}
