package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Service handles the business logic for notes. Every operation is a single
// read-modify-write cycle over the whole collection: LoadAll, mutate in memory,
// SaveAll. Validation and lookup failures are returned before anything is saved.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new Service. A nil logger discards output.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// Repository returns the underlying repository.
func (s *Service) Repository() Repository {
	return s.repo
}

// AddInput carries the raw user input of a new note. Empty Category and
// Priority select the defaults.
type AddInput struct {
	Title    string
	Content  string
	Category string
	Priority string
	Tags     []string
}

// AddNote validates the input, assigns the next id and persists the note.
func (s *Service) AddNote(ctx context.Context, in AddInput) (Note, error) {
	opts := []NoteOption{WithTags(in.Tags...)}
	if strings.TrimSpace(in.Category) != "" {
		c, err := ParseCategory(in.Category)
		if err != nil {
			return Note{}, err
		}
		opts = append(opts, WithCategory(c))
	}
	if strings.TrimSpace(in.Priority) != "" {
		p, err := ParsePriority(in.Priority)
		if err != nil {
			return Note{}, err
		}
		opts = append(opts, WithPriority(p))
	}
	if strings.TrimSpace(in.Title) == "" {
		return Note{}, NewError(KindValidation, "title must not be empty")
	}

	notes, err := s.repo.LoadAll(ctx)
	if err != nil {
		return Note{}, err
	}
	id, err := s.repo.NextID(ctx)
	if err != nil {
		return Note{}, err
	}

	note, err := NewNote(id, in.Title, in.Content, opts...)
	if err != nil {
		return Note{}, err
	}

	ctx = WithChangeReason(ctx, fmt.Sprintf("add note #%d", note.ID))
	if err := s.repo.SaveAll(ctx, append(notes, note)); err != nil {
		return Note{}, err
	}
	s.logger.Debug("note added", "id", note.ID, "category", note.Category, "priority", note.Priority)
	return note, nil
}

// ListOptions carries raw filter tokens. An empty Status selects active notes.
type ListOptions struct {
	Category string
	Priority string
	Status   string
}

// QueryResult is the outcome of a listing or search. Total is the size of the
// whole collection, so Total == 0 tells an empty store apart from a query
// that matched nothing.
type QueryResult struct {
	Notes []Note
	Total int
}

// Empty reports whether the collection itself is empty.
func (r QueryResult) Empty() bool {
	return r.Total == 0
}

// ListNotes returns the notes matching opts, newest first.
func (s *Service) ListNotes(ctx context.Context, opts ListOptions) (QueryResult, error) {
	status := opts.Status
	if strings.TrimSpace(status) == "" {
		status = string(StatusActive)
	}
	criteria, err := ParseCriteria(opts.Category, opts.Priority, status)
	if err != nil {
		return QueryResult{}, err
	}

	notes, err := s.repo.LoadAll(ctx)
	if err != nil {
		return QueryResult{}, err
	}
	result := QueryResult{Notes: Filter(notes, criteria), Total: len(notes)}
	s.logger.Debug("notes listed", "total", result.Total, "matched", len(result.Notes))
	return result, nil
}

// SearchNotes returns the notes containing term in the given scope, newest first.
func (s *Service) SearchNotes(ctx context.Context, term, scope string) (QueryResult, error) {
	sc, err := ParseScope(scope)
	if err != nil {
		return QueryResult{}, err
	}

	notes, err := s.repo.LoadAll(ctx)
	if err != nil {
		return QueryResult{}, err
	}
	result := QueryResult{Notes: Search(notes, term, sc), Total: len(notes)}
	s.logger.Debug("notes searched", "term", term, "scope", sc, "matched", len(result.Notes))
	return result, nil
}

// DeleteNote permanently removes a note and returns it.
func (s *Service) DeleteNote(ctx context.Context, id int) (Note, error) {
	notes, err := s.repo.LoadAll(ctx)
	if err != nil {
		return Note{}, err
	}
	idx := indexOf(notes, id)
	if idx < 0 {
		return Note{}, notFound(id)
	}

	deleted := notes[idx]
	remaining := append(notes[:idx:idx], notes[idx+1:]...)

	ctx = WithChangeReason(ctx, fmt.Sprintf("delete note #%d", id))
	if err := s.repo.SaveAll(ctx, remaining); err != nil {
		return Note{}, err
	}
	s.logger.Debug("note deleted", "id", id)
	return deleted, nil
}

// ArchiveResult is the outcome of ArchiveNote.
type ArchiveResult struct {
	Note            Note
	AlreadyArchived bool
}

// ArchiveNote moves a note to the archive. Archiving an archived note saves nothing.
func (s *Service) ArchiveNote(ctx context.Context, id int) (ArchiveResult, error) {
	notes, err := s.repo.LoadAll(ctx)
	if err != nil {
		return ArchiveResult{}, err
	}
	idx := indexOf(notes, id)
	if idx < 0 {
		return ArchiveResult{}, notFound(id)
	}

	if !notes[idx].Archive() {
		return ArchiveResult{Note: notes[idx], AlreadyArchived: true}, nil
	}

	ctx = WithChangeReason(ctx, fmt.Sprintf("archive note #%d", id))
	if err := s.repo.SaveAll(ctx, notes); err != nil {
		return ArchiveResult{}, err
	}
	s.logger.Debug("note archived", "id", id)
	return ArchiveResult{Note: notes[idx]}, nil
}

// EditInput carries the raw fields of an edit. Nil fields are left untouched;
// a non-nil empty Tags slice clears the tags.
type EditInput struct {
	Title    *string
	Content  *string
	Category *string
	Priority *string
	Tags     []string
}

// EditNote applies a partial update to a note.
func (s *Service) EditNote(ctx context.Context, id int, in EditInput) (Note, error) {
	u := Update{Title: in.Title, Content: in.Content, Tags: in.Tags}
	if in.Category != nil && strings.TrimSpace(*in.Category) != "" {
		c, err := ParseCategory(*in.Category)
		if err != nil {
			return Note{}, err
		}
		u.Category = &c
	}
	if in.Priority != nil && strings.TrimSpace(*in.Priority) != "" {
		p, err := ParsePriority(*in.Priority)
		if err != nil {
			return Note{}, err
		}
		u.Priority = &p
	}

	notes, err := s.repo.LoadAll(ctx)
	if err != nil {
		return Note{}, err
	}
	idx := indexOf(notes, id)
	if idx < 0 {
		return Note{}, notFound(id)
	}
	if err := notes[idx].Update(u); err != nil {
		return Note{}, err
	}

	ctx = WithChangeReason(ctx, fmt.Sprintf("edit note #%d", id))
	if err := s.repo.SaveAll(ctx, notes); err != nil {
		return Note{}, err
	}
	s.logger.Debug("note updated", "id", id)
	return notes[idx], nil
}

// TagCount is a tag with the number of notes carrying it.
type TagCount struct {
	Tag   string
	Notes int
}

// TagUsage returns every tag in ascending order with its usage count.
func (s *Service) TagUsage(ctx context.Context) ([]TagCount, error) {
	notes, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	tags := CollectTags(notes)
	usage := make([]TagCount, 0, len(tags))
	for _, tag := range tags {
		count := 0
		for _, n := range notes {
			if n.HasTag(tag) {
				count++
			}
		}
		usage = append(usage, TagCount{Tag: tag, Notes: count})
	}
	return usage, nil
}

// GetNote retrieves a single note.
func (s *Service) GetNote(ctx context.Context, id int) (Note, error) {
	n, ok, err := s.repo.Get(ctx, id)
	if err != nil {
		return Note{}, err
	}
	if !ok {
		return Note{}, notFound(id)
	}
	return n, nil
}

func indexOf(notes []Note, id int) int {
	for i, n := range notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}
