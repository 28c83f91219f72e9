package report

import "strings"

// Kind selects the header and row shape for an object.
type Kind int

const (
	KindOther Kind = iota
	KindEvent
	KindIssue
	KindPull
	KindLabel
	KindRepository
	KindUser
)

var kindNames = map[Kind]string{
	KindOther:      "other",
	KindEvent:      "event",
	KindIssue:      "issue",
	KindPull:       "pull",
	KindLabel:      "label",
	KindRepository: "repository",
	KindUser:       "user",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindOther]
}

// ParseKind maps an object type name to its Kind. Unknown names map to KindOther.
func ParseKind(name string) Kind {
	name = strings.ToLower(strings.TrimSpace(name))
	for kind, candidate := range kindNames {
		if candidate == name {
			return kind
		}
	}
	return KindOther
}

// Kinds returns all kinds in declaration order.
func Kinds() []Kind {
	return []Kind{KindEvent, KindIssue, KindPull, KindLabel, KindRepository, KindUser, KindOther}
}

var headers = map[Kind]string{
	KindEvent: "actor,eventType,createdAt",
	KindIssue: "number,state,issueUrl,createdAt,updatedAt,closedAt,lifetime,milestone,reporter," +
		"assignee,title",
	KindPull: "number,state,issueUrl,createdAt,updatedAt,closedAt,lifetime,milestone,reporter," +
		"assignee,title",
	KindLabel: "name,color,description,url",
	KindRepository: "repoName,repoFullName,repoId,repoUrl,private,owner,ownerUrl,forks_count," +
		"stargazers_count,open_issues_count,subscribers_count,created_at,pushed_at," +
		"updated_at,private",
	KindUser: "user,name,email,userUrl,membershipState,organization,organizationRole," +
		"contributions",
	KindOther: "itemName",
}

// Header returns the header line for kind, without a trailing newline.
func Header(kind Kind) string {
	if h, ok := headers[kind]; ok {
		return h
	}
	return headers[KindOther]
}
