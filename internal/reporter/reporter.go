package reporter

import (
	"context"
	"fmt"
	"io"

	"kumareport/internal/models"
	"kumareport/internal/report"
)

// Fetcher reads both status page endpoints.
type Fetcher interface {
	FetchMonitorList(ctx context.Context, slug string) (models.StatusPage, error)
	FetchHeartbeats(ctx context.Context, slug string) (models.HeartbeatData, error)
}

// Run fetches monitors, then heartbeats, and writes the joined report to w.
// Nothing is written unless both fetches succeed.
func Run(ctx context.Context, fetcher Fetcher, slug string, w io.Writer) error {
	page, err := fetcher.FetchMonitorList(ctx, slug)
	if err != nil {
		return err
	}

	heartbeats, err := fetcher.FetchHeartbeats(ctx, slug)
	if err != nil {
		return err
	}

	rows := report.Build(page, heartbeats)
	out := "\n" + report.Render(rows)
	if len(rows) > 0 {
		out += report.Summarize(rows).String() + "\n"
	}

	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
