package config

import "errors"

var (
	// ErrMalformedConfig is returned when a YAML configuration file cannot be parsed.
	ErrMalformedConfig = errors.New("malformed configuration file")
	// ErrKeyNotFound is returned when a section or parameter is missing from a configuration file.
	ErrKeyNotFound = errors.New("configuration key not found")
	// ErrUnknownMetricsContext is returned for a metrics context outside the known set.
	ErrUnknownMetricsContext = errors.New("unknown metrics context")
	// ErrNoConfigFile is returned when settings are requested but no configuration file was found.
	ErrNoConfigFile = errors.New("no configuration file available")
)
