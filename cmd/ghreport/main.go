package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/eugenenazirov/ghreport/internal/application"
	"github.com/eugenenazirov/ghreport/internal/config"
	"github.com/eugenenazirov/ghreport/internal/filters"
	"github.com/eugenenazirov/ghreport/internal/logging"
	"github.com/eugenenazirov/ghreport/internal/report"
	"github.com/eugenenazirov/ghreport/internal/textparse"
	"github.com/eugenenazirov/ghreport/internal/timeutil"
)

var version = "dev"

// newLogger is replaced in tests.
var newLogger = logging.New

func main() {
	// A missing .env file is normal.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type cli struct {
	app *kingpin.Application

	configFile  *string
	token       *string
	org         *string
	lookupRPS   *float64
	lookupBurst *int
	logLevel    *string

	canonical     *kingpin.CmdClause
	canonicalName *string

	tokenCmd    *kingpin.CmdClause
	tokenReveal *bool

	labels *kingpin.CmdClause

	metrics        *kingpin.CmdClause
	metricsContext *string

	filters          *kingpin.CmdClause
	filtersType      *string
	filtersRaw       *string
	filtersDelimiter *string

	since     *kingpin.CmdClause
	sinceDays *int

	delta      *kingpin.CmdClause
	deltaStart *string
	deltaEnd   *string
	deltaUnit  *string

	report            *kingpin.CmdClause
	reportKind        *string
	reportInput       *string
	reportMemberships *string
	reportNoHeader    *bool
}

func newCLI(stdout, stderr io.Writer) *cli {
	app := kingpin.New("ghreport", "GitHub report helpers - configuration lookup, query filters and CSV rows")
	app.Version(version)
	app.UsageWriter(stdout)
	app.ErrorWriter(stderr)
	app.Terminate(nil)

	c := &cli{app: app}
	c.configFile = app.Flag("config", "Path to YAML or INI configuration file (default: apis.yml searched upwards)").String()
	c.token = app.Flag("token", "GitHub token overriding GITHUB_TOKEN and the credentials file").String()
	c.org = app.Flag("org", "Organization used for membership lookups").String()
	c.lookupRPS = app.Flag("lookup-rps", "Membership lookups per second (set 0 to disable throttling)").Default("-1").Float64()
	c.lookupBurst = app.Flag("lookup-burst", "Burst capacity for membership lookups").Default("-1").Int()
	c.logLevel = app.Flag("log-level", "Log level (debug, info, warn, error)").String()

	c.canonical = app.Command("canonical", "Print the canonical form of a name")
	c.canonicalName = c.canonical.Arg("name", "Name such as org/repo").Required().String()

	c.tokenCmd = app.Command("token", "Check that a GitHub token can be resolved")
	c.tokenReveal = c.tokenCmd.Flag("reveal", "Print the full token").Bool()

	c.labels = app.Command("labels", "Print configured labels as name,color")

	contexts := make([]string, 0, len(config.MetricsContexts()))
	for _, ctx := range config.MetricsContexts() {
		contexts = append(contexts, string(ctx))
	}
	c.metrics = app.Command("metrics", "Print a configured metrics value")
	c.metricsContext = c.metrics.Arg("context", "One of "+strings.Join(contexts, ", ")).Required().Enum(contexts...)

	c.filters = app.Command("filters", "Validate issue or pull request filters and print the result")
	c.filtersType = c.filters.Arg("type", "Object type: issue or pull").Required().String()
	c.filtersRaw = c.filters.Flag("filter", "Overrides as key=value pairs").Short('f').String()
	c.filtersDelimiter = c.filters.Flag("delimiter", "Separator between key=value pairs").Default(",").String()

	c.since = app.Command("since", "Print the UTC timestamp N days ago")
	c.sinceDays = c.since.Arg("days", "Number of days").Required().Int()

	c.delta = app.Command("delta", "Print the span between two timestamps")
	c.deltaStart = c.delta.Arg("start", "Start (RFC3339 or YYYY-MM-DD)").Required().String()
	c.deltaEnd = c.delta.Arg("end", "End (RFC3339 or YYYY-MM-DD)").Required().String()
	c.deltaUnit = c.delta.Flag("unit", "m, h, d or s").Short('u').Default("m").String()

	c.report = app.Command("report", "Print CSV rows for a JSON array of GitHub objects")
	c.reportKind = c.report.Arg("kind", "event, issue, pull, label, repository, user or anything else").Required().String()
	c.reportInput = c.report.Flag("input", "JSON input file, - for stdin").Short('i').Default("-").String()
	c.reportMemberships = c.report.Flag("memberships", "JSON file of organization memberships for user rows").String()
	c.reportNoHeader = c.report.Flag("no-header", "Omit the header line").Bool()

	return c
}

func (c *cli) overrides() *config.CLIOverrides {
	overrides := &config.CLIOverrides{ConfigFile: *c.configFile}
	if *c.token != "" {
		overrides.Token = c.token
	}
	if *c.org != "" {
		overrides.Org = c.org
	}
	if *c.lookupRPS >= 0 {
		overrides.LookupRPS = c.lookupRPS
	}
	if *c.lookupBurst > 0 {
		overrides.LookupBurst = c.lookupBurst
	}
	if *c.logLevel != "" {
		overrides.LogLevel = c.logLevel
	}
	return overrides
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c := newCLI(stdout, stderr)

	command, err := c.app.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "ghreport: error: %v\n", err)
		return 1
	}
	if command == "" {
		return 0
	}

	overrides := c.overrides()
	overrides.SkipFile = !c.needsConfig(command)
	cfg, err := config.Load(overrides)
	if err != nil {
		fmt.Fprintf(stderr, "ghreport: error: failed to load configuration: %v\n", err)
		return 1
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "ghreport: error: failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := c.dispatch(ctx, command, cfg, logger, stdin, stdout); err != nil {
		logger.Debug("command failed", zap.String("command", command), zap.Error(err))
		fmt.Fprintf(stderr, "ghreport: error: %v\n", err)
		return 1
	}
	return 0
}

// needsConfig reports whether command reads the configuration file.
func (c *cli) needsConfig(command string) bool {
	switch command {
	case c.tokenCmd.FullCommand(), c.labels.FullCommand(), c.metrics.FullCommand(), c.report.FullCommand():
		return true
	default:
		return false
	}
}

func (c *cli) dispatch(ctx context.Context, command string, cfg config.Config, logger *zap.Logger, stdin io.Reader, stdout io.Writer) error {
	switch command {
	case c.canonical.FullCommand():
		_, err := fmt.Fprintln(stdout, textparse.CanonicalName(*c.canonicalName))
		return err
	case c.tokenCmd.FullCommand():
		return printToken(stdout, cfg, *c.tokenReveal)
	case c.labels.FullCommand():
		return printLabels(stdout, cfg, logger)
	case c.metrics.FullCommand():
		return printMetric(stdout, cfg, config.MetricsContext(*c.metricsContext))
	case c.filters.FullCommand():
		return printFilters(stdout, *c.filtersType, *c.filtersRaw, *c.filtersDelimiter)
	case c.since.FullCommand():
		_, err := fmt.Fprintln(stdout, timeutil.DaysAgo(*c.sinceDays).Format(time.RFC3339))
		return err
	case c.delta.FullCommand():
		return printDelta(stdout, *c.deltaStart, *c.deltaEnd, timeutil.Unit(*c.deltaUnit))
	case c.report.FullCommand():
		return c.runReport(ctx, cfg, logger, stdin, stdout)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func printToken(w io.Writer, cfg config.Config, reveal bool) error {
	token, err := cfg.GitHubToken()
	if err != nil {
		return fmt.Errorf("resolve token: %w", err)
	}
	if token == "" {
		return errors.New("resolve token: token is empty")
	}
	if !reveal {
		token = maskToken(token)
	}
	_, err = fmt.Fprintln(w, token)
	return err
}

func maskToken(token string) string {
	const visible = 4
	if len(token) <= visible {
		return strings.Repeat("*", len(token))
	}
	return token[:visible] + strings.Repeat("*", len(token)-visible)
}

func printLabels(w io.Writer, cfg config.Config, logger *zap.Logger) error {
	settings, err := cfg.RequireSettings()
	if err != nil {
		return err
	}
	labels, ok := settings.Labels()
	if !ok {
		logger.Info("no labels configured", zap.String("config", cfg.ConfigFile))
		return nil
	}
	for _, name := range slices.Sorted(maps.Keys(labels)) {
		if _, err := fmt.Fprintf(w, "%s,%s\n", name, labels[name]); err != nil {
			return err
		}
	}
	return nil
}

func printMetric(w io.Writer, cfg config.Config, ctx config.MetricsContext) error {
	settings, err := cfg.RequireSettings()
	if err != nil {
		return err
	}
	value, err := settings.MetricValue(ctx)
	if err != nil {
		return err
	}

	var line string
	switch v := value.(type) {
	case []int:
		parts := make([]string, len(v))
		for i, n := range v {
			parts[i] = strconv.Itoa(n)
		}
		line = strings.Join(parts, ",")
	case []string:
		line = strings.Join(v, ",")
	default:
		line = fmt.Sprint(v)
	}
	_, err = fmt.Fprintln(w, line)
	return err
}

func printFilters(w io.Writer, objectType, raw, delimiter string) error {
	parsed, err := filters.Parse(objectType, raw, delimiter)
	if err != nil {
		return err
	}
	for _, key := range slices.Sorted(maps.Keys(parsed)) {
		if _, err := fmt.Fprintf(w, "%s=%s\n", key, parsed[key]); err != nil {
			return err
		}
	}
	return nil
}

func printDelta(w io.Writer, rawStart, rawEnd string, unit timeutil.Unit) error {
	start, err := parseTimestamp(rawStart)
	if err != nil {
		return fmt.Errorf("parse start: %w", err)
	}
	end, err := parseTimestamp(rawEnd)
	if err != nil {
		return fmt.Errorf("parse end: %w", err)
	}
	_, err = fmt.Fprintln(w, timeutil.DeltaTime(start, end, unit))
	return err
}

func parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, value)
}

func (c *cli) runReport(ctx context.Context, cfg config.Config, logger *zap.Logger, stdin io.Reader, stdout io.Writer) error {
	var opts []application.Option
	if *c.reportMemberships != "" {
		opts = append(opts, application.WithMembershipsFile(*c.reportMemberships))
	}

	app, err := application.New(cfg, logger, stdout, opts...)
	if err != nil {
		return err
	}

	input := stdin
	if *c.reportInput != "-" {
		f, err := os.Open(*c.reportInput)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		input = f
	}

	return app.Report(ctx, report.ParseKind(*c.reportKind), input, !*c.reportNoHeader)
}
