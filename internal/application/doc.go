// Package application provides application initialization and dependency wiring.
// It encapsulates the creation of the membership lookup, its throttle and the
// report printer, keeping the main package focused on CLI parsing.
package application
