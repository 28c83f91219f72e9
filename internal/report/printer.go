package report

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/ghreport/internal/timeutil"
)

const (
	missingField = "-"
	// missingValue fills absent issue fields, matching what existing report consumers parse.
	missingValue = "None"
)

type rowFunc func(ctx context.Context, p *Printer, item any) (string, error)

var rowFuncs = map[Kind]rowFunc{
	KindEvent:      eventRow,
	KindIssue:      issueRow,
	KindPull:       issueRow,
	KindLabel:      labelRow,
	KindRepository: repositoryRow,
	KindUser:       userRow,
}

// PrinterOption configures Printer behaviour.
type PrinterOption func(*Printer)

// WithMembershipLookup sets the lookup used for user rows.
func WithMembershipLookup(lookup MembershipLookup) PrinterOption {
	return func(p *Printer) {
		p.lookup = lookup
	}
}

// WithOrganization sets the organization user memberships are resolved against.
func WithOrganization(org string) PrinterOption {
	return func(p *Printer) {
		p.org = org
	}
}

// WithLogger sets the logger used to report degraded rows.
func WithLogger(logger *zap.Logger) PrinterOption {
	return func(p *Printer) {
		p.logger = logger
	}
}

// Printer writes header and row lines to an io.Writer.
type Printer struct {
	w      io.Writer
	org    string
	lookup MembershipLookup
	logger *zap.Logger
}

// NewPrinter constructs a Printer writing to w.
func NewPrinter(w io.Writer, opts ...PrinterOption) *Printer {
	p := &Printer{
		w:      w,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Header writes the header line for kind.
func (p *Printer) Header(kind Kind) error {
	_, err := fmt.Fprintln(p.w, Header(kind))
	return err
}

// Row writes the row line for item. item must be the record type of kind
// (value or pointer); KindOther accepts anything.
func (p *Printer) Row(ctx context.Context, kind Kind, item any) error {
	line, err := p.FormatRow(ctx, kind, item)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.w, line)
	return err
}

// FormatRow returns the row line for item without writing it.
func (p *Printer) FormatRow(ctx context.Context, kind Kind, item any) (string, error) {
	fn, ok := rowFuncs[kind]
	if !ok {
		return fmt.Sprint(item), nil
	}
	return fn(ctx, p, item)
}

// Report writes an optional header followed by one row per item.
func (p *Printer) Report(ctx context.Context, kind Kind, items []any, header bool) error {
	if header {
		if err := p.Header(kind); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.Row(ctx, kind, item); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}

func eventRow(_ context.Context, _ *Printer, item any) (string, error) {
	e, err := as[Event](KindEvent, item)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s,%s,%s", e.Actor.Login, e.Type, formatTime(e.CreatedAt)), nil
}

func issueRow(_ context.Context, _ *Printer, item any) (string, error) {
	i, err := as[Issue](KindIssue, item)
	if err != nil {
		return "", err
	}

	assignee, milestone, closedAt := missingValue, missingValue, missingValue
	if i.Assignee != nil {
		assignee = i.Assignee.Login
	}
	if i.Milestone != nil {
		milestone = i.Milestone.Title
	}
	end := i.UpdatedAt
	if i.ClosedAt != nil {
		end = *i.ClosedAt
		closedAt = formatTime(*i.ClosedAt)
	}
	lifetime := timeutil.DeltaTime(i.CreatedAt, end, timeutil.UnitMinutes)

	return fmt.Sprintf("%d,%s,%s,%s,%s,%s,%d,%s,%s,%s,%s",
		i.Number, i.State, i.HTMLURL, formatTime(i.CreatedAt), formatTime(i.UpdatedAt),
		closedAt, lifetime, milestone, i.User.Login, assignee, i.Title), nil
}

func labelRow(_ context.Context, _ *Printer, item any) (string, error) {
	l, err := as[Label](KindLabel, item)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s;%s,%s;%s", l.Name, l.Color, l.Description, l.URL), nil
}

func repositoryRow(_ context.Context, _ *Printer, item any) (string, error) {
	r, err := as[Repository](KindRepository, item)
	if err != nil {
		return "", err
	}
	private := strconv.FormatBool(r.Private)
	return fmt.Sprintf("%s,%s,%d,%s,%s,%s,%s,%d,%d,%d,%d,%s,%s,%s,%s",
		r.Name, r.FullName, r.ID, r.HTMLURL, private,
		r.Owner.Login, r.Owner.HTMLURL, r.ForksCount,
		r.StargazersCount, r.OpenIssuesCount, r.SubscribersCount,
		formatTime(r.CreatedAt), formatTime(r.PushedAt), formatTime(r.UpdatedAt), private), nil
}

// userRow degrades to a dash-filled row when the membership cannot be resolved.
func userRow(ctx context.Context, p *Printer, item any) (string, error) {
	u, err := as[User](KindUser, item)
	if err != nil {
		return "", err
	}

	m, err := p.membership(ctx, u.Login)
	if err != nil {
		p.logger.Debug("membership lookup failed",
			zap.String("login", u.Login),
			zap.String("org", p.org),
			zap.Error(err),
		)
		return fmt.Sprintf("%s,%s,%s,%s,%s,%s,%s,%d",
			u.Login, missingField, missingField, u.HTMLURL,
			missingField, missingField, missingField, u.Contributions), nil
	}

	return fmt.Sprintf("%s,%s,%s,%s,%s,%s,%s,%d",
		u.Login, m.User.Name, m.User.Email, m.User.URL,
		m.State, m.Organization.Login, m.Role, u.Contributions), nil
}

func (p *Printer) membership(ctx context.Context, login string) (m Membership, err error) {
	if p.lookup == nil {
		return Membership{}, ErrNoMembershipLookup
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("membership lookup panicked: %v", rec)
		}
	}()
	return p.lookup.OrganizationMembership(ctx, login, p.org)
}

func as[T any](kind Kind, item any) (T, error) {
	switch v := item.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%s row from %T: %w", kind, item, ErrUnexpectedItem)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
