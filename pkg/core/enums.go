package core

import "strings"

// Category classifies a note by topic.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryStudy    Category = "study"
	CategoryShopping Category = "shopping"
	CategoryIdeas    Category = "ideas"
	CategoryOther    Category = "other"
)

// Categories lists every category in declaration order.
var Categories = []Category{
	CategoryWork,
	CategoryPersonal,
	CategoryStudy,
	CategoryShopping,
	CategoryIdeas,
	CategoryOther,
}

// IsValid reports whether c is a member of the enumeration.
func (c Category) IsValid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryStudy, CategoryShopping, CategoryIdeas, CategoryOther:
		return true
	default:
		return false
	}
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory converts a user or storage token into a Category.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseCategory(token string) (Category, error) {
	c := Category(normalizeToken(token))
	if !c.IsValid() {
		return "", invalidValue("category", token, tokens(Categories))
	}
	return c, nil
}

// Priority ranks a note.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every priority from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// IsValid reports whether p is a member of the enumeration.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

func (p Priority) String() string {
	return string(p)
}

// ParsePriority converts a user or storage token into a Priority.
func ParsePriority(token string) (Priority, error) {
	p := Priority(normalizeToken(token))
	if !p.IsValid() {
		return "", invalidValue("priority", token, tokens(Priorities))
	}
	return p, nil
}

// Status is the lifecycle state of a note.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// Statuses lists every status.
var Statuses = []Status{StatusActive, StatusArchived}

// IsValid reports whether s is a member of the enumeration.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusArchived:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a user or storage token into a Status.
func ParseStatus(token string) (Status, error) {
	s := Status(normalizeToken(token))
	if !s.IsValid() {
		return "", invalidValue("status", token, tokens(Statuses))
	}
	return s, nil
}

func normalizeToken(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}

func tokens[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
