package textract

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Poller waits for an expense-analysis job to reach a terminal status. The
// status is read off the first result page; no documents are retained here.
type Poller struct {
	Fetcher  PageFetcher
	Interval time.Duration
	Timeout  time.Duration
	Logger   *slog.Logger
}

func NewPoller(fetcher PageFetcher, interval, timeout time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{Fetcher: fetcher, Interval: interval, Timeout: timeout, Logger: logger}
}

// PollUntilDone blocks until the job status is terminal, the timeout elapses,
// or the context is cancelled.
func (p *Poller) PollUntilDone(ctx context.Context, jobID string) (JobStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	attempt := 0
	for {
		attempt++
		page, err := p.Fetcher.FetchResultsPage(ctx, jobID, "")
		if err != nil {
			return JobStatusUnknown, fmt.Errorf("poll job %s: %w", jobID, err)
		}
		p.Logger.Debug("textract.poll", "job_id", jobID, "attempt", attempt, "status", page.Status)
		if page.Status.Terminal() {
			p.Logger.Info("textract.poll.done", "job_id", jobID, "status", page.Status, "attempts", attempt)
			return page.Status, nil
		}

		select {
		case <-ctx.Done():
			return page.Status, fmt.Errorf("poll job %s: %w", jobID, ctx.Err())
		case <-ticker.C:
		}
	}
}
