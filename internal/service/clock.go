package service

import (
	"context"
	"log/slog"
	"time"
)

const (
	DefaultRefreshInterval  = time.Second
	DefaultBoundaryInterval = time.Minute
)

type ClockOptions struct {
	RefreshInterval  time.Duration
	BoundaryInterval time.Duration
	// OnRefresh receives the fasting readout on each refresh tick while a fast is active.
	OnRefresh func(FastProgress)
	// OnBoundary is called after the day marker moves.
	OnBoundary func(time.Time)
}

// RunClock drives the display refresh and day-boundary ticks until ctx is done.
// Refresh ticks only read state. A boundary check runs once before the first tick.
func RunClock(ctx context.Context, app *App, opts ClockOptions) error {
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = DefaultRefreshInterval
	}
	if opts.BoundaryInterval <= 0 {
		opts.BoundaryInterval = DefaultBoundaryInterval
	}

	refresh := time.NewTicker(opts.RefreshInterval)
	defer refresh.Stop()
	boundary := time.NewTicker(opts.BoundaryInterval)
	defer boundary.Stop()

	if err := checkBoundary(app, opts); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-refresh.C:
			if opts.OnRefresh == nil {
				continue
			}
			if p, ok := app.FastProgress(); ok {
				opts.OnRefresh(p)
			}
		case <-boundary.C:
			if err := checkBoundary(app, opts); err != nil {
				return err
			}
		}
	}
}

func checkBoundary(app *App, opts ClockOptions) error {
	crossed, err := app.CheckDayBoundary()
	if err != nil {
		app.logger.Error("day boundary check failed", slog.String("error", err.Error()))
		return err
	}
	if crossed && opts.OnBoundary != nil {
		opts.OnBoundary(app.LastReset())
	}
	return nil
}
