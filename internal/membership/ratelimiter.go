package membership

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/eugenenazirov/ghreport/internal/report"
)

type waiter interface {
	Wait(ctx context.Context) error
}

type throttledLookup struct {
	next    report.MembershipLookup
	limiter waiter
}

// RateLimited wraps lookup with a token bucket allowing ratePerSecond lookups
// with the given burst. A non-positive rate disables throttling.
func RateLimited(lookup report.MembershipLookup, ratePerSecond float64, burst int) report.MembershipLookup {
	if ratePerSecond <= 0 || lookup == nil {
		return lookup
	}
	if burst <= 0 {
		burst = 1
	}
	return &throttledLookup{
		next:    lookup,
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

func (t *throttledLookup) OrganizationMembership(ctx context.Context, login, org string) (report.Membership, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return report.Membership{}, err
	}
	return t.next.OrganizationMembership(ctx, login, org)
}
