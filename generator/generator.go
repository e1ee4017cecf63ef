// Package generator drives one submit, poll, download run against a video provider.
package generator

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/BaSui01/santavideo/internal/artifact"
	"github.com/BaSui01/santavideo/internal/metrics"
	"github.com/BaSui01/santavideo/internal/telemetry"
	"github.com/BaSui01/santavideo/types"
	"github.com/BaSui01/santavideo/video"
)

// State is the state of the overall run.
type State string

const (
	StateSubmitted  State = "submitted"
	StatePolling    State = "polling"
	StateSucceeded  State = "succeeded"
	StateDownloaded State = "downloaded"
	StateFailed     State = "failed"
	StateCancelled  State = "cancelled"
	StateTimedOut   State = "timed_out"
)

// Template holds the fixed parameters every request is built from.
type Template struct {
	Prompt       string
	Width        int
	Height       int
	Duration     int
	Variants     int
	Model        string
	AspectRatio  string
	Quality      string
	Resolution   string
	IncludeAudio bool
	Inpaint      bool
}

// Outcome describes a finished run. It is returned alongside the error for
// runs that got past submission.
type Outcome struct {
	RequestID  string
	State      State
	Job        *video.Job
	OutputPath string
	Bytes      int
}

// Generator runs the job lifecycle sequentially.
type Generator struct {
	provider    video.Provider
	template    Template
	interval    time.Duration
	maxAttempts int
	writer      *artifact.Writer
	metrics     *metrics.Collector
	logger      *zap.Logger
	console     io.Writer
	sleep       func(ctx context.Context, d time.Duration) error
	newRunID    func() string

	tracer      trace.Tracer
	jobDuration metric.Float64Histogram
}

// Option configures a Generator.
type Option func(*Generator)

// WithTemplate sets the request template.
func WithTemplate(t Template) Option {
	return func(g *Generator) { g.template = t }
}

// WithPolling sets the poll interval and ceiling. A ceiling of zero keeps the
// provider default.
func WithPolling(interval time.Duration, maxAttempts int) Option {
	return func(g *Generator) {
		g.interval = interval
		if maxAttempts > 0 {
			g.maxAttempts = maxAttempts
		}
	}
}

// WithWriter sets the artifact writer.
func WithWriter(w *artifact.Writer) Option {
	return func(g *Generator) { g.writer = w }
}

// WithMetrics sets the metrics collector.
func WithMetrics(c *metrics.Collector) Option {
	return func(g *Generator) { g.metrics = c }
}

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithConsole sets where operator-facing progress lines go.
func WithConsole(w io.Writer) Option {
	return func(g *Generator) {
		if w != nil {
			g.console = w
		}
	}
}

// New creates a Generator for provider.
func New(provider video.Provider, opts ...Option) *Generator {
	g := &Generator{
		provider:    provider,
		interval:    5 * time.Second,
		maxAttempts: provider.DefaultMaxAttempts(),
		logger:      zap.NewNop(),
		console:     io.Discard,
		sleep:       sleepContext,
		newRunID:    uuid.NewString,
		tracer:      telemetry.Tracer(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.writer == nil {
		g.writer = artifact.NewWriter("", "")
	}
	if g.metrics == nil {
		g.metrics = metrics.NewCollector("santavideo", g.logger)
	}
	g.logger = g.logger.With(zap.String("provider", provider.Name()))

	if h, err := telemetry.Meter().Float64Histogram("santavideo.job.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Wall time from submission to final state"),
	); err == nil {
		g.jobDuration = h
	}
	return g
}

// MaxAttempts returns the poll ceiling in effect.
func (g *Generator) MaxAttempts() int { return g.maxAttempts }

func (g *Generator) printf(format string, args ...any) {
	fmt.Fprintf(g.console, format, args...)
}

// Run loads the image at imagePath, submits it, polls to a terminal state and
// downloads the result. Failures after submission return a non-nil Outcome
// together with a *types.Error.
func (g *Generator) Run(ctx context.Context, imagePath string) (*Outcome, error) {
	runID := g.newRunID()
	ctx = types.WithRunID(ctx, runID)
	logger := g.logger.With(zap.String("run_id", runID))

	ctx, span := g.tracer.Start(ctx, "santavideo.run", trace.WithAttributes(
		attribute.String("provider", g.provider.Name()),
		attribute.String("run_id", runID),
	))
	defer span.End()

	img, err := video.LoadImage(imagePath)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	g.printf("📸 Loading image: %s\n", img.Name)
	logger.Info("image loaded",
		zap.String("name", img.Name),
		zap.String("mime_type", img.MIMEType),
		zap.Int("bytes", len(img.Data)),
	)

	req := g.buildRequest(img)
	g.printf("\n🎬 Generating video with %s...\n", g.provider.Name())
	g.printf("   Prompt: %s\n\n", req.Prompt)

	started := time.Now()
	out := &Outcome{RequestID: runID, State: StateSubmitted}
	defer func() {
		g.metrics.RecordJob(g.provider.Name(), string(out.State), time.Since(started))
		if g.jobDuration != nil {
			g.jobDuration.Record(ctx, time.Since(started).Seconds(),
				metric.WithAttributes(
					attribute.String("provider", g.provider.Name()),
					attribute.String("state", string(out.State)),
				))
		}
		span.SetAttributes(attribute.String("state", string(out.State)))
	}()

	sub, err := g.submit(ctx, req)
	if err != nil {
		out.State = StateFailed
		span.SetStatus(codes.Error, err.Error())
		logger.Error("submission failed", zap.Error(err))
		return out, err
	}

	url := sub.InlineURL
	if sub.Inline() {
		out.State = StateSucceeded
		logger.Info("inline result returned")
	} else {
		out.Job = sub.Job
		g.printf("✓ Video generation started! Operation ID: %s\n", sub.Job.ID)
		logger.Info("job submitted", zap.String("job_id", sub.Job.ID))

		if err := g.poll(ctx, out, logger); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return out, err
		}
		g.printf("\n✓ Video generation completed!\n")

		url, err = g.provider.ResolveDownloadURL(sub.Job)
		if err != nil {
			out.State = StateFailed
			span.SetStatus(codes.Error, err.Error())
			logger.Error("no download reference", zap.Error(err))
			return out, err
		}
	}

	if err := g.download(ctx, url, out, logger); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return out, err
	}
	return out, nil
}

func (g *Generator) buildRequest(img *video.Image) *video.GenerationRequest {
	t := g.template
	req := &video.GenerationRequest{
		Prompt:       t.Prompt,
		Image:        img,
		Width:        t.Width,
		Height:       t.Height,
		Duration:     t.Duration,
		Variants:     t.Variants,
		Model:        t.Model,
		AspectRatio:  t.AspectRatio,
		Quality:      t.Quality,
		Resolution:   t.Resolution,
		IncludeAudio: t.IncludeAudio,
	}
	if t.Inpaint {
		req.Inpaint = video.DefaultInpaint(img)
	}
	return req
}

func (g *Generator) submit(ctx context.Context, req *video.GenerationRequest) (*video.Submission, error) {
	ctx, span := g.tracer.Start(ctx, "santavideo.submit")
	defer span.End()

	g.printf("⏳ Sending request to %s...\n", g.provider.Name())
	start := time.Now()
	sub, err := g.provider.Submit(ctx, req)
	g.metrics.RecordStage(g.provider.Name(), "submit", err, time.Since(start))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return sub, nil
}

// poll runs the bounded status loop. It leaves out.State at a terminal value.
func (g *Generator) poll(ctx context.Context, out *Outcome, logger *zap.Logger) error {
	job := out.Job
	out.State = StatePolling
	g.printf("\n⏳ Generating video (this may take a few minutes)...\n")

	for attempt := 1; !job.Status.IsTerminal() && attempt <= g.maxAttempts; attempt++ {
		if err := g.sleep(ctx, g.interval); err != nil {
			out.State = StateFailed
			return types.NewError(types.ErrPollingFailed, "polling interrupted").
				WithProvider(g.provider.Name()).WithCause(err)
		}
		job.Attempts = attempt

		update, err := g.pollOnce(ctx, job)
		if err != nil {
			out.State = StateFailed
			logger.Error("status poll failed", zap.Int("attempt", attempt), zap.Error(err))
			return err
		}
		if err := job.Apply(update); err != nil {
			logger.Warn("ignoring status update", zap.Error(err))
		}
		g.metrics.RecordPoll(g.provider.Name(), string(job.Status))
		logger.Debug("status polled",
			zap.Int("attempt", attempt),
			zap.String("status", string(job.Status)),
			zap.String("raw_status", job.RawStatus),
		)

		if !job.Status.IsTerminal() {
			elapsed := time.Duration(attempt) * g.interval
			g.printf("\r   Progress: %s (%ds elapsed)", job.RawStatus, int(elapsed.Seconds()))
		}
	}

	switch job.Status {
	case video.StatusSucceeded:
		out.State = StateSucceeded
		logger.Info("generation succeeded", zap.Int("attempts", job.Attempts))
		return nil
	case video.StatusFailed:
		out.State = StateFailed
		logger.Warn("generation failed", zap.String("detail", job.Error))
		return types.NewError(types.ErrGenerationFailed, failureMessage("video generation failed", job.Error)).
			WithProvider(g.provider.Name())
	case video.StatusCancelled:
		out.State = StateCancelled
		logger.Warn("generation cancelled", zap.String("detail", job.Error))
		return types.NewError(types.ErrGenerationCancelled, failureMessage("video generation cancelled", job.Error)).
			WithProvider(g.provider.Name())
	}

	_ = job.TimeOut()
	out.State = StateTimedOut
	logger.Warn("generation timed out", zap.Int("attempts", job.Attempts))
	return types.NewError(types.ErrGenerationTimedOut,
		fmt.Sprintf("no terminal status after %d polls", g.maxAttempts)).
		WithProvider(g.provider.Name())
}

func (g *Generator) pollOnce(ctx context.Context, job *video.Job) (*video.StatusUpdate, error) {
	ctx, span := g.tracer.Start(ctx, "santavideo.poll", trace.WithAttributes(
		attribute.String("job_id", job.ID),
		attribute.Int("attempt", job.Attempts),
	))
	defer span.End()

	start := time.Now()
	update, err := g.provider.Poll(ctx, job)
	g.metrics.RecordStage(g.provider.Name(), "poll", err, time.Since(start))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("status", string(update.Status)))
	return update, nil
}

func (g *Generator) download(ctx context.Context, url string, out *Outcome, logger *zap.Logger) error {
	ctx, span := g.tracer.Start(ctx, "santavideo.download")
	defer span.End()

	g.printf("\n📥 Downloading video from: %s\n", url)
	start := time.Now()
	data, err := g.provider.Download(ctx, url)
	g.metrics.RecordStage(g.provider.Name(), "download", err, time.Since(start))
	if err != nil {
		out.State = StateFailed
		span.SetStatus(codes.Error, err.Error())
		logger.Error("download failed", zap.Error(err))
		return err
	}

	saved, err := g.writer.Write(data)
	if err != nil {
		out.State = StateFailed
		span.SetStatus(codes.Error, err.Error())
		logger.Error("write failed", zap.Error(err))
		return types.NewError(types.ErrDownloadFailed, "failed to save video").
			WithProvider(g.provider.Name()).WithCause(err)
	}
	g.metrics.RecordDownload(g.provider.Name(), saved.Bytes)

	out.State = StateDownloaded
	out.OutputPath = saved.Path
	out.Bytes = saved.Bytes
	span.SetAttributes(attribute.Int("bytes", saved.Bytes))

	g.printf("\n✅ SUCCESS! Video saved to: %s\n", saved.Path)
	g.printf("   File size: %.2f MB\n", saved.SizeMB())
	g.printf("\n🎄 Your magical Santa video is ready!\n")
	logger.Info("video saved", zap.String("path", saved.Path), zap.Int("bytes", saved.Bytes))
	return nil
}

func failureMessage(base, detail string) string {
	if detail == "" {
		return base
	}
	return base + ": " + detail
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
