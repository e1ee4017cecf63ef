// MockProvider 的视频 Provider 测试模拟实现。
//
// 支持状态序列、内联结果与分阶段错误注入。
package mocks

import (
	"context"
	"sync"

	"github.com/BaSui01/santavideo/video"
)

// --- MockProvider 结构 ---

// MockProvider 是 video.Provider 的模拟实现
type MockProvider struct {
	mu sync.Mutex

	name        string
	maxAttempts int
	jobID       string
	inlineURL   string
	statuses    []video.JobStatus
	detail      string
	data        []byte

	submitErr   error
	pollErr     error
	resolveErr  error
	downloadErr error

	// 调用记录
	requests     []*video.GenerationRequest
	pollCount    int
	downloadURLs []string
}

// --- 构造函数和 Builder 方法 ---

// NewMockProvider 创建新的 MockProvider，默认一次轮询即成功
func NewMockProvider() *MockProvider {
	return &MockProvider{
		name:        "mock",
		maxAttempts: 5,
		jobID:       "job-mock",
		statuses:    []video.JobStatus{video.StatusSucceeded},
		data:        []byte("mock-video"),
	}
}

// WithName 设置 Provider 名称
func (m *MockProvider) WithName(name string) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.name = name
	return m
}

// WithMaxAttempts 设置默认轮询上限
func (m *MockProvider) WithMaxAttempts(n int) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxAttempts = n
	return m
}

// WithStatuses 设置轮询依次返回的状态，用尽后保持 running
func (m *MockProvider) WithStatuses(statuses ...video.JobStatus) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses = statuses
	return m
}

// WithErrorDetail 设置失败状态附带的错误描述
func (m *MockProvider) WithErrorDetail(detail string) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.detail = detail
	return m
}

// WithInline 让提交直接返回内联结果地址
func (m *MockProvider) WithInline(url string) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inlineURL = url
	return m
}

// WithData 设置下载返回的内容
func (m *MockProvider) WithData(data []byte) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	return m
}

// WithSubmitError 设置提交错误
func (m *MockProvider) WithSubmitError(err error) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitErr = err
	return m
}

// WithPollError 设置轮询错误
func (m *MockProvider) WithPollError(err error) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pollErr = err
	return m
}

// WithResolveError 设置下载地址解析错误
func (m *MockProvider) WithResolveError(err error) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolveErr = err
	return m
}

// WithDownloadError 设置下载错误
func (m *MockProvider) WithDownloadError(err error) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.downloadErr = err
	return m
}

// --- video.Provider 接口实现 ---

// Name 返回 Provider 名称
func (m *MockProvider) Name() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.name
}

// DefaultMaxAttempts 返回默认轮询上限
func (m *MockProvider) DefaultMaxAttempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxAttempts
}

// Submit 记录请求并返回任务或内联结果
func (m *MockProvider) Submit(ctx context.Context, req *video.GenerationRequest) (*video.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	if m.inlineURL != "" {
		return &video.Submission{InlineURL: m.inlineURL}, nil
	}
	return &video.Submission{Job: video.NewJob(m.jobID)}, nil
}

// Poll 按序返回预设状态
func (m *MockProvider) Poll(ctx context.Context, job *video.Job) (*video.StatusUpdate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.pollCount
	m.pollCount++
	if m.pollErr != nil {
		return nil, m.pollErr
	}

	status := video.StatusRunning
	if n < len(m.statuses) {
		status = m.statuses[n]
	}
	u := &video.StatusUpdate{Status: status, RawStatus: string(status)}
	switch status {
	case video.StatusSucceeded:
		u.Generations = []video.GenerationResult{{ID: "gen-mock"}}
	case video.StatusFailed, video.StatusCancelled:
		u.Error = m.detail
	}
	return u, nil
}

// ResolveDownloadURL 返回固定的内容地址
func (m *MockProvider) ResolveDownloadURL(job *video.Job) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.resolveErr != nil {
		return "", m.resolveErr
	}
	return "mock://videos/" + job.ID + "/content", nil
}

// Download 记录地址并返回预设内容
func (m *MockProvider) Download(ctx context.Context, url string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.downloadURLs = append(m.downloadURLs, url)
	if m.downloadErr != nil {
		return nil, m.downloadErr
	}
	return m.data, nil
}

// --- 调用记录 ---

// Requests 返回提交过的请求
func (m *MockProvider) Requests() []*video.GenerationRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*video.GenerationRequest(nil), m.requests...)
}

// PollCount 返回轮询次数
func (m *MockProvider) PollCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pollCount
}

// DownloadURLs 返回下载过的地址
func (m *MockProvider) DownloadURLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.downloadURLs...)
}

var _ video.Provider = (*MockProvider)(nil)
