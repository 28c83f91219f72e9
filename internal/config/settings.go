package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/eugenenazirov/ghreport/internal/textparse"
)

// GitHubSection is the configuration section holding all report settings.
const GitHubSection = "github"

const (
	keyCredsFile   = "creds_file"
	keyLabels      = "labels"
	keyMetrics     = "metrics"
	keyLookup      = "lookup"
	keyGitHubToken = "github_token"
)

// MetricsContext selects one of the configured metrics values.
type MetricsContext string

const (
	MetricsOrg             MetricsContext = "org"
	MetricsRepo            MetricsContext = "repo"
	MetricsTimeframe       MetricsContext = "timeframe"
	MetricsTeam            MetricsContext = "team"
	MetricsNoActivityLimit MetricsContext = "no_activity_limit"
	MetricsWorkflows       MetricsContext = "workflows"
)

// MetricsContexts lists every supported context in a stable order.
func MetricsContexts() []MetricsContext {
	return []MetricsContext{
		MetricsOrg, MetricsRepo, MetricsTimeframe, MetricsTeam, MetricsNoActivityLimit, MetricsWorkflows,
	}
}

// Metrics mirrors the github.metrics block of the configuration file.
type Metrics struct {
	Org             string   `yaml:"org"`
	Repo            string   `yaml:"repo"`
	Timeframe       []int    `yaml:"timeframe"`
	Team            string   `yaml:"team"`
	NoActivityLimit int      `yaml:"no_activity_limit"`
	Workflows       []string `yaml:"workflows"`
}

// SortedTimeframe returns the configured timeframes, largest first.
func (m Metrics) SortedTimeframe() []int {
	out := slices.Clone(m.Timeframe)
	slices.Sort(out)
	slices.Reverse(out)
	return out
}

// Throttle mirrors the optional github.lookup block.
type Throttle struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// Settings resolves the github section of a loaded configuration file.
type Settings struct {
	file *File
}

// NewSettings wraps a parsed configuration file.
func NewSettings(f *File) *Settings {
	return &Settings{file: f}
}

// LoadSettings opens path and wraps it in Settings.
func LoadSettings(path string) (*Settings, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewSettings(f), nil
}

// File returns the underlying configuration file.
func (s *Settings) File() *File {
	return s.file
}

// CredsFile returns the credentials file path. Relative paths are resolved
// against the configuration file's directory and a leading "~/" against the
// user's home directory.
func (s *Settings) CredsFile() (string, error) {
	raw, err := s.file.Lookup(GitHubSection, keyCredsFile)
	if err != nil {
		return "", err
	}
	path := strings.TrimSpace(fmt.Sprint(raw))

	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, rest), nil
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(s.file.Path()), path)
	}
	return path, nil
}

// Token reads github_token from the default section of the credentials file.
func (s *Settings) Token() (string, error) {
	credsFile, err := s.CredsFile()
	if err != nil {
		return "", err
	}
	raw, err := ReadParameter(credsFile, DefaultSection, keyGitHubToken)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(fmt.Sprint(raw)), nil
}

// Labels returns the configured label name to color mapping. Labels may be
// written as a list of single-entry maps or as a plain map. Missing or
// unreadable labels report false.
func (s *Settings) Labels() (map[string]string, bool) {
	raw, err := s.file.Lookup(GitHubSection, keyLabels)
	if err != nil || raw == nil {
		return nil, false
	}

	var list []map[string]string
	if err := decode(raw, &list); err == nil {
		return textparse.MergeMaps(list), true
	}

	var flat map[string]string
	if err := decode(raw, &flat); err == nil && flat != nil {
		return flat, true
	}
	return nil, false
}

// Metrics decodes the whole github.metrics block. Absent keys keep their zero
// value; use MetricValue when a missing key must be reported.
func (s *Settings) Metrics() (Metrics, error) {
	raw, err := s.file.Lookup(GitHubSection, keyMetrics)
	if err != nil {
		return Metrics{}, err
	}

	var m Metrics
	if err := decode(raw, &m); err != nil {
		return Metrics{}, fmt.Errorf("metrics: %w", err)
	}
	return m, nil
}

// MetricValue returns the metrics value selected by ctx. Only the selected
// key is read; a missing key wraps ErrKeyNotFound. Timeframes are returned
// largest first.
func (s *Settings) MetricValue(ctx MetricsContext) (any, error) {
	if !slices.Contains(MetricsContexts(), ctx) {
		return nil, fmt.Errorf("%q: %w", ctx, ErrUnknownMetricsContext)
	}

	raw, err := s.file.Lookup(GitHubSection, keyMetrics)
	if err != nil {
		return nil, err
	}
	var block map[string]any
	if err := decode(raw, &block); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	value, ok := block[string(ctx)]
	if !ok {
		return nil, fmt.Errorf("%s: [%s] %s.%s: %w", s.file.Path(), GitHubSection, keyMetrics, ctx, ErrKeyNotFound)
	}

	switch ctx {
	case MetricsOrg, MetricsRepo, MetricsTeam:
		return convertMetric[string](ctx, value)
	case MetricsNoActivityLimit:
		return convertMetric[int](ctx, value)
	case MetricsTimeframe:
		timeframe, err := convertMetric[[]int](ctx, value)
		if err != nil {
			return nil, err
		}
		return Metrics{Timeframe: timeframe}.SortedTimeframe(), nil
	default:
		return convertMetric[[]string](ctx, value)
	}
}

func convertMetric[T any](ctx MetricsContext, value any) (T, error) {
	var out T
	if err := convert(value, &out); err != nil {
		return out, fmt.Errorf("metrics.%s: %w", ctx, err)
	}
	return out, nil
}

// Throttle decodes the optional github.lookup block. A missing block reports false.
func (s *Settings) Throttle() (Throttle, bool, error) {
	raw, err := s.file.Lookup(GitHubSection, keyLookup)
	if isNotFound(err) {
		return Throttle{}, false, nil
	}
	if err != nil {
		return Throttle{}, false, err
	}

	var t Throttle
	if err := decode(raw, &t); err != nil {
		return Throttle{}, false, fmt.Errorf("lookup: %w", err)
	}
	return t, true, nil
}
