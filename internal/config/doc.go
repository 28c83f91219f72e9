// Package config reads report settings from YAML or INI files and layers them
// with environment variables and CLI flags, with precedence: CLI flags >
// Environment variables > Config file > Defaults. Individual parameters can
// also be read directly from any file with ReadParameter.
package config
