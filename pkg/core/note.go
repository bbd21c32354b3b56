package core

import (
	"slices"
	"strings"
	"time"
)

// now is the clock used for every timestamp the domain sets. Tests replace it.
var now = func() time.Time { return time.Now().UTC() }

// Note is the central entity of the domain: a short user-authored text
// classified by category, priority and free-form tags.
type Note struct {
	ID        int
	Title     string
	Content   string
	Category  Category
	Priority  Priority
	Tags      []string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteOption customizes a Note built by NewNote.
type NoteOption func(*Note)

// WithCategory sets the category. Defaults to CategoryOther.
func WithCategory(c Category) NoteOption {
	return func(n *Note) { n.Category = c }
}

// WithPriority sets the priority. Defaults to PriorityMedium.
func WithPriority(p Priority) NoteOption {
	return func(n *Note) { n.Priority = p }
}

// WithTags sets the tags. The slice is copied.
func WithTags(tags ...string) NoteOption {
	return func(n *Note) { n.Tags = append([]string{}, tags...) }
}

// WithStatus sets the status. Defaults to StatusActive.
func WithStatus(s Status) NoteOption {
	return func(n *Note) { n.Status = s }
}

// WithTimestamps sets both timestamps instead of the current time.
func WithTimestamps(created, updated time.Time) NoteOption {
	return func(n *Note) {
		n.CreatedAt = created.UTC()
		n.UpdatedAt = updated.UTC()
	}
}

// NewNote builds a validated Note.
func NewNote(id int, title, content string, opts ...NoteOption) (Note, error) {
	ts := now()
	n := Note{
		ID:        id,
		Title:     title,
		Content:   content,
		Category:  CategoryOther,
		Priority:  PriorityMedium,
		Tags:      []string{},
		Status:    StatusActive,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	for _, opt := range opts {
		opt(&n)
	}
	if err := n.Validate(); err != nil {
		return Note{}, err
	}
	return n, nil
}

// Validate checks every field-level invariant of the note.
func (n Note) Validate() error {
	if n.ID <= 0 {
		return NewError(KindValidation, "note id must be a positive integer")
	}
	if strings.TrimSpace(n.Title) == "" {
		return NewError(KindValidation, "title must not be empty")
	}
	if !n.Category.IsValid() {
		return invalidValue("category", string(n.Category), tokens(Categories))
	}
	if !n.Priority.IsValid() {
		return invalidValue("priority", string(n.Priority), tokens(Priorities))
	}
	if !n.Status.IsValid() {
		return invalidValue("status", string(n.Status), tokens(Statuses))
	}
	if n.UpdatedAt.Before(n.CreatedAt) {
		return NewError(KindValidation, "updated_at must not precede created_at")
	}
	return nil
}

// Update holds a partial set of field changes. Nil fields are left untouched;
// a non-nil empty Tags slice clears the tags.
type Update struct {
	Title    *string
	Content  *string
	Category *Category
	Priority *Priority
	Tags     []string
}

// Update applies the present fields of u and refreshes UpdatedAt, even when no
// field changed. Nothing is modified when u is invalid.
func (n *Note) Update(u Update) error {
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return NewError(KindValidation, "title must not be empty")
	}
	if u.Category != nil && !u.Category.IsValid() {
		return invalidValue("category", string(*u.Category), tokens(Categories))
	}
	if u.Priority != nil && !u.Priority.IsValid() {
		return invalidValue("priority", string(*u.Priority), tokens(Priorities))
	}

	if u.Title != nil {
		n.Title = *u.Title
	}
	if u.Content != nil {
		n.Content = *u.Content
	}
	if u.Category != nil {
		n.Category = *u.Category
	}
	if u.Priority != nil {
		n.Priority = *u.Priority
	}
	if u.Tags != nil {
		n.Tags = append([]string{}, u.Tags...)
	}
	n.touch()
	return nil
}

// Archive moves the note to StatusArchived. It reports false and changes
// nothing when the note is already archived.
func (n *Note) Archive() bool {
	if n.Status == StatusArchived {
		return false
	}
	n.Status = StatusArchived
	n.touch()
	return true
}

// HasTag reports whether the note carries tag exactly.
func (n Note) HasTag(tag string) bool {
	return slices.Contains(n.Tags, tag)
}

// Clone returns a deep copy of the note.
func (n Note) Clone() Note {
	n.Tags = append([]string{}, n.Tags...)
	return n
}

func (n *Note) touch() {
	ts := now()
	if ts.Before(n.CreatedAt) {
		ts = n.CreatedAt
	}
	n.UpdatedAt = ts
}
