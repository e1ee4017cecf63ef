// Package video provides the provider adapters for image-to-video generation jobs.
package video

import (
	"context"
	"errors"
	"fmt"
)

// JobStatus is the normalized status of a remote generation job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusRunning   JobStatus = "running"
	StatusSucceeded JobStatus = "succeeded"
	StatusFailed    JobStatus = "failed"
	StatusCancelled JobStatus = "cancelled"
	// StatusTimedOut is never reported by a provider; it is assigned locally
	// when the poll ceiling is reached.
	StatusTimedOut JobStatus = "timed_out"
)

// IsTerminal reports whether no further transition can follow s.
func (s JobStatus) IsTerminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusCancelled, StatusTimedOut:
		return true
	}
	return false
}

func (s JobStatus) rank() int {
	switch s {
	case StatusQueued:
		return 0
	case StatusRunning:
		return 1
	default:
		return 2
	}
}

// CropBounds is a region of the source image expressed as fractions of its size.
type CropBounds struct {
	LeftFraction   float64 `json:"left_fraction"`
	TopFraction    float64 `json:"top_fraction"`
	RightFraction  float64 `json:"right_fraction"`
	BottomFraction float64 `json:"bottom_fraction"`
}

// FullFrame covers the whole source image.
var FullFrame = CropBounds{LeftFraction: 0, TopFraction: 0, RightFraction: 1, BottomFraction: 1}

// Validate checks that the bounds describe a non-empty region inside [0,1].
func (b CropBounds) Validate() error {
	for _, f := range []float64{b.LeftFraction, b.TopFraction, b.RightFraction, b.BottomFraction} {
		if f < 0 || f > 1 {
			return fmt.Errorf("crop bound %v outside [0,1]", f)
		}
	}
	if b.LeftFraction >= b.RightFraction || b.TopFraction >= b.BottomFraction {
		return fmt.Errorf("crop bounds describe an empty region")
	}
	return nil
}

// InpaintItem pins a frame of the output video to (part of) a source image.
type InpaintItem struct {
	FrameIndex int         `json:"frame_index"`
	Type       string      `json:"type"`
	FileName   string      `json:"file_name"`
	CropBounds *CropBounds `json:"crop_bounds,omitempty"`
}

// Validate checks an inpaint descriptor before it is sent.
func (i InpaintItem) Validate() error {
	if i.FrameIndex < 0 {
		return fmt.Errorf("inpaint frame_index must not be negative")
	}
	if i.FileName == "" {
		return fmt.Errorf("inpaint file_name is required")
	}
	if i.CropBounds != nil {
		return i.CropBounds.Validate()
	}
	return nil
}

// GenerationRequest is built once per invocation and never modified afterwards.
type GenerationRequest struct {
	Prompt       string
	Image        *Image
	Width        int
	Height       int
	Duration     int // seconds
	Variants     int
	Model        string
	AspectRatio  string // 16:9, 9:16, 1:1
	Quality      string
	Resolution   string // e.g., "1280x720"
	IncludeAudio bool
	Inpaint      []InpaintItem
}

// Validate checks the request before it reaches a provider.
func (r *GenerationRequest) Validate() error {
	if r.Prompt == "" {
		return fmt.Errorf("prompt is required")
	}
	if r.Image == nil || len(r.Image.Data) == 0 {
		return fmt.Errorf("source image is required")
	}
	for _, item := range r.Inpaint {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// GenerationResult references one generated video on the remote service.
type GenerationResult struct {
	ID string `json:"id"`
}

// ErrJobTerminal is returned when an update is applied to a finished job.
var ErrJobTerminal = errors.New("job already in terminal state")

// Job tracks one remote job. It is only changed by applying status updates.
type Job struct {
	ID          string
	Status      JobStatus
	RawStatus   string
	Generations []GenerationResult
	ResultURL   string
	Error       string
	Attempts    int
}

// NewJob creates a job in the queued state.
func NewJob(id string) *Job {
	return &Job{ID: id, Status: StatusQueued}
}

// StatusUpdate is one normalized status response.
type StatusUpdate struct {
	Status      JobStatus
	RawStatus   string
	Generations []GenerationResult
	ResultURL   string
	Error       string
}

// Apply moves the job forward. Terminal jobs reject any update, and a
// non-terminal status lower than the current one is ignored.
func (j *Job) Apply(u *StatusUpdate) error {
	if j.Status.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrJobTerminal, j.Status)
	}
	j.RawStatus = u.RawStatus
	if u.Status.rank() >= j.Status.rank() {
		j.Status = u.Status
	}
	if len(u.Generations) > 0 {
		j.Generations = u.Generations
	}
	if u.ResultURL != "" {
		j.ResultURL = u.ResultURL
	}
	if u.Error != "" {
		j.Error = u.Error
	}
	return nil
}

// TimeOut marks the job abandoned after the poll ceiling.
func (j *Job) TimeOut() error {
	if j.Status.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrJobTerminal, j.Status)
	}
	j.Status = StatusTimedOut
	return nil
}

// Submission is the outcome of a submit call: either a job to poll or an
// inline result URL to download right away.
type Submission struct {
	Job       *Job
	InlineURL string
}

// Inline reports whether the result can be downloaded without polling.
func (s *Submission) Inline() bool {
	return s.InlineURL != ""
}

// Provider adapts one remote video-generation API shape.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Submit uploads the request and returns a job handle or an inline result.
	Submit(ctx context.Context, req *GenerationRequest) (*Submission, error)

	// Poll fetches the current status of a job once.
	Poll(ctx context.Context, job *Job) (*StatusUpdate, error)

	// ResolveDownloadURL derives the content URL of a succeeded job.
	ResolveDownloadURL(job *Job) (string, error)

	// Download fetches the binary video at url.
	Download(ctx context.Context, url string) ([]byte, error)

	// DefaultMaxAttempts is the poll ceiling used when none is configured.
	DefaultMaxAttempts() int
}
