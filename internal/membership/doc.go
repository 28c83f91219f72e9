// Package membership provides organization membership lookups for user
// report rows: an in-memory store that can be loaded from exported API data
// and a throttling decorator for lookups backed by the remote API.
package membership
