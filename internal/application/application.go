package application

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/eugenenazirov/ghreport/internal/config"
	"github.com/eugenenazirov/ghreport/internal/membership"
	"github.com/eugenenazirov/ghreport/internal/report"
)

// App encapsulates the report dependencies.
type App struct {
	cfg     config.Config
	lookup  report.MembershipLookup
	printer *report.Printer
	logger  *zap.Logger
}

// Option configures App construction.
type Option func(*options)

type options struct {
	membershipsFile string
	lookup          report.MembershipLookup
}

// WithMembershipsFile loads organization memberships from a JSON export.
func WithMembershipsFile(path string) Option {
	return func(o *options) {
		o.membershipsFile = path
	}
}

// WithLookup supplies a membership lookup directly, primarily for callers
// backed by a live API client.
func WithLookup(lookup report.MembershipLookup) Option {
	return func(o *options) {
		o.lookup = lookup
	}
}

// New initializes the application from the provided configuration, writing report lines to out.
func New(cfg config.Config, logger *zap.Logger, out io.Writer, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	// Only externally supplied lookups are throttled; a memberships file is served from memory.
	var lookup report.MembershipLookup
	switch {
	case o.lookup != nil:
		lookup = membership.RateLimited(o.lookup, cfg.LookupRPS, cfg.LookupBurst)
	case o.membershipsFile != "":
		store, err := membership.LoadFile(o.membershipsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load memberships: %w", err)
		}
		logger.Debug("memberships loaded",
			zap.String("file", o.membershipsFile),
			zap.Int("count", store.Len()),
		)
		lookup = store
	}

	printerOpts := []report.PrinterOption{
		report.WithOrganization(cfg.Org),
		report.WithLogger(logger),
	}
	if lookup != nil {
		printerOpts = append(printerOpts, report.WithMembershipLookup(lookup))
	}

	return &App{
		cfg:     cfg,
		lookup:  lookup,
		printer: report.NewPrinter(out, printerOpts...),
		logger:  logger,
	}, nil
}

// Printer returns the report printer.
func (a *App) Printer() *report.Printer {
	return a.printer
}

// Report decodes a JSON array of kind records from r and prints them.
func (a *App) Report(ctx context.Context, kind report.Kind, r io.Reader, header bool) error {
	items, err := report.DecodeItems(kind, r)
	if err != nil {
		return err
	}

	a.logger.Info("writing report",
		zap.Stringer("kind", kind),
		zap.Int("items", len(items)),
		zap.String("org", a.cfg.Org),
	)
	return a.printer.Report(ctx, kind, items, header)
}
