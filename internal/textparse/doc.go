// Package textparse turns the loosely formatted strings operators pass on the
// command line (delimited lists, key=value pairs, repository names) into
// structured values used by the report helpers.
package textparse
