package core

import (
	"time"
)

// TimeLayout is the persisted timestamp layout (ISO-8601).
const TimeLayout = time.RFC3339Nano

// legacyLayouts are accepted on read for stores written by older versions,
// which recorded naive local timestamps.
var legacyLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Record is the storage-neutral representation of a Note. Required fields are
// pointers so that absence can be told apart from a zero value.
type Record struct {
	ID        *int     `json:"id" yaml:"id"`
	Title     *string  `json:"title" yaml:"title"`
	Content   string   `json:"content" yaml:"content"`
	Category  string   `json:"category" yaml:"category"`
	Priority  string   `json:"priority" yaml:"priority"`
	Tags      []string `json:"tags" yaml:"tags"`
	Status    string   `json:"status" yaml:"status"`
	CreatedAt string   `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt string   `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// ToRecord serializes the note.
func (n Note) ToRecord() Record {
	id := n.ID
	title := n.Title
	tags := append([]string{}, n.Tags...)
	return Record{
		ID:        &id,
		Title:     &title,
		Content:   n.Content,
		Category:  string(n.Category),
		Priority:  string(n.Priority),
		Tags:      tags,
		Status:    string(n.Status),
		CreatedAt: n.CreatedAt.UTC().Format(TimeLayout),
		UpdatedAt: n.UpdatedAt.UTC().Format(TimeLayout),
	}
}

// DecodeRecord rebuilds a Note from a record. Any structural problem is
// reported as a KindFormat error; the caller decides whether to skip the
// record or abort.
func DecodeRecord(r Record) (Note, error) {
	if r.ID == nil {
		return Note{}, formatError("record has no id")
	}
	if *r.ID <= 0 {
		return Note{}, formatError("record has invalid id %d", *r.ID)
	}
	if r.Title == nil {
		return Note{}, formatError("record #%d has no title", *r.ID)
	}

	category, err := ParseCategory(r.Category)
	if err != nil {
		return Note{}, formatError("record #%d: %s", *r.ID, MessageOf(err))
	}
	priority, err := ParsePriority(r.Priority)
	if err != nil {
		return Note{}, formatError("record #%d: %s", *r.ID, MessageOf(err))
	}
	status, err := ParseStatus(r.Status)
	if err != nil {
		return Note{}, formatError("record #%d: %s", *r.ID, MessageOf(err))
	}

	ts := now()
	created, err := parseTimestamp(r.CreatedAt, ts)
	if err != nil {
		return Note{}, formatError("record #%d: invalid created_at %q", *r.ID, r.CreatedAt)
	}
	updated, err := parseTimestamp(r.UpdatedAt, ts)
	if err != nil {
		return Note{}, formatError("record #%d: invalid updated_at %q", *r.ID, r.UpdatedAt)
	}
	if updated.Before(created) {
		updated = created
	}

	tags := append([]string{}, r.Tags...)
	return Note{
		ID:        *r.ID,
		Title:     *r.Title,
		Content:   r.Content,
		Category:  category,
		Priority:  priority,
		Tags:      tags,
		Status:    status,
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}

func parseTimestamp(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	if t, err := time.Parse(TimeLayout, value); err == nil {
		return t.UTC(), nil
	}
	var lastErr error
	for _, layout := range legacyLayouts {
		t, err := time.ParseInLocation(layout, value, time.Local)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
