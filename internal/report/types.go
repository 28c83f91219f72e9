package report

import (
	"context"
	"time"
)

// Account is the subset of a GitHub user or organization referenced by other records.
type Account struct {
	Login   string `json:"login"`
	HTMLURL string `json:"html_url"`
}

// Event is a repository or issue event.
type Event struct {
	Actor     Account   `json:"actor"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// Milestone is the milestone attached to an issue or pull request.
type Milestone struct {
	Title string `json:"title"`
}

// Issue describes both issues and pull requests.
type Issue struct {
	Number    int        `json:"number"`
	State     string     `json:"state"`
	HTMLURL   string     `json:"html_url"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ClosedAt  *time.Time `json:"closed_at"`
	Milestone *Milestone `json:"milestone"`
	User      Account    `json:"user"`
	Assignee  *Account   `json:"assignee"`
}

// Label is a repository label.
type Label struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Repository is a repository summary.
type Repository struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	FullName         string    `json:"full_name"`
	HTMLURL          string    `json:"html_url"`
	Private          bool      `json:"private"`
	Owner            Account   `json:"owner"`
	ForksCount       int       `json:"forks_count"`
	StargazersCount  int       `json:"stargazers_count"`
	OpenIssuesCount  int       `json:"open_issues_count"`
	SubscribersCount int       `json:"subscribers_count"`
	CreatedAt        time.Time `json:"created_at"`
	PushedAt         time.Time `json:"pushed_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// User is a repository contributor.
type User struct {
	Login         string `json:"login"`
	HTMLURL       string `json:"html_url"`
	Contributions int    `json:"contributions"`
}

// MemberProfile holds the profile fields reported for an organization member.
type MemberProfile struct {
	Login string `json:"login"`
	Name  string `json:"name"`
	Email string `json:"email"`
	URL   string `json:"url"`
}

// Membership is a user's membership in an organization.
type Membership struct {
	State        string        `json:"state"`
	Role         string        `json:"role"`
	Organization Account       `json:"organization"`
	User         MemberProfile `json:"user"`
}

// MembershipLookup resolves a user's membership in an organization.
type MembershipLookup interface {
	OrganizationMembership(ctx context.Context, login, org string) (Membership, error)
}
