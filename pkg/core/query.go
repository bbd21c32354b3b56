package core

import (
	"slices"
	"strings"
)

// StatusAll is the status filter token that disables the status predicate.
const StatusAll = "all"

// Criteria holds the optional field predicates of a listing. Nil fields match
// every note.
type Criteria struct {
	Category *Category
	Priority *Priority
	Status   *Status
}

// ParseCriteria validates raw filter tokens. Empty tokens mean "no filter";
// the status token "all" also disables the status predicate. The first
// unrecognized token aborts the whole query.
func ParseCriteria(category, priority, status string) (Criteria, error) {
	var c Criteria
	if strings.TrimSpace(category) != "" {
		v, err := ParseCategory(category)
		if err != nil {
			return Criteria{}, err
		}
		c.Category = &v
	}
	if strings.TrimSpace(priority) != "" {
		v, err := ParsePriority(priority)
		if err != nil {
			return Criteria{}, err
		}
		c.Priority = &v
	}
	if s := strings.TrimSpace(status); s != "" && !strings.EqualFold(s, StatusAll) {
		v, err := ParseStatus(status)
		if err != nil {
			return Criteria{}, invalidValue("status", status, append(tokens(Statuses), StatusAll))
		}
		c.Status = &v
	}
	return c, nil
}

// Match reports whether n satisfies every present predicate.
func (c Criteria) Match(n Note) bool {
	if c.Category != nil && n.Category != *c.Category {
		return false
	}
	if c.Priority != nil && n.Priority != *c.Priority {
		return false
	}
	if c.Status != nil && n.Status != *c.Status {
		return false
	}
	return true
}

// Filter returns the notes matching c, newest first. notes is not modified.
func Filter(notes []Note, c Criteria) []Note {
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if c.Match(n) {
			out = append(out, n)
		}
	}
	SortNewestFirst(out)
	return out
}

// Scope selects which fields a search term is matched against.
type Scope string

const (
	ScopeTitle   Scope = "title"
	ScopeContent Scope = "content"
	ScopeTags    Scope = "tags"
	ScopeAll     Scope = "all"
)

// Scopes lists every search scope.
var Scopes = []Scope{ScopeTitle, ScopeContent, ScopeTags, ScopeAll}

// ParseScope converts a token into a Scope. An empty token selects ScopeAll.
func ParseScope(token string) (Scope, error) {
	s := Scope(normalizeToken(token))
	switch s {
	case "":
		return ScopeAll, nil
	case ScopeTitle, ScopeContent, ScopeTags, ScopeAll:
		return s, nil
	default:
		return "", invalidValue("search scope", token, tokens(Scopes))
	}
}

// Search returns the notes containing term (case-insensitive substring) in
// the given scope, newest first. There is no relevance ranking.
func Search(notes []Note, term string, scope Scope) []Note {
	needle := strings.ToLower(term)
	out := make([]Note, 0)
	for _, n := range notes {
		if matchScope(n, needle, scope) {
			out = append(out, n)
		}
	}
	SortNewestFirst(out)
	return out
}

func matchScope(n Note, needle string, scope Scope) bool {
	switch scope {
	case ScopeTitle:
		return strings.Contains(strings.ToLower(n.Title), needle)
	case ScopeContent:
		return strings.Contains(strings.ToLower(n.Content), needle)
	case ScopeTags:
		return slices.ContainsFunc(n.Tags, func(tag string) bool {
			return strings.Contains(strings.ToLower(tag), needle)
		})
	case ScopeAll:
		return matchScope(n, needle, ScopeTitle) ||
			matchScope(n, needle, ScopeContent) ||
			matchScope(n, needle, ScopeTags)
	default:
		return false
	}
}

// SortNewestFirst orders notes by CreatedAt descending. Ties keep their input order.
func SortNewestFirst(notes []Note) {
	slices.SortStableFunc(notes, func(a, b Note) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
