// Package commands turns note operations into the text blocks printed by the CLI.
//
// Every operation returns one block of text. Validation failures and unknown
// ids are rendered as "Error: ..." text; only storage and strict-load format
// failures are returned as Go errors.
package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/TimRka/Notes-manager-PL/pkg/core"
	"github.com/TimRka/Notes-manager-PL/pkg/display"
)

// Commands exposes the user-facing operations of the notebook.
type Commands struct {
	svc *core.Service
}

// New creates the command layer over a service.
func New(svc *core.Service) *Commands {
	return &Commands{svc: svc}
}

// Service returns the underlying service.
func (c *Commands) Service() *core.Service {
	return c.svc
}

// Add creates a note.
func (c *Commands) Add(ctx context.Context, in core.AddInput) (string, error) {
	n, err := c.svc.AddNote(ctx, in)
	if err != nil {
		return failure(err)
	}
	return fmt.Sprintf("Note added (ID: %d): %s", n.ID, n.Title), nil
}

// List shows the notes matching the filters. With full set, notes whose
// content exceeds the preview get an extra line with the whole text.
func (c *Commands) List(ctx context.Context, opts core.ListOptions, full bool) (string, error) {
	res, err := c.svc.ListNotes(ctx, opts)
	if err != nil {
		return failure(err)
	}
	if res.Empty() {
		return "No notes", nil
	}
	if len(res.Notes) == 0 {
		return "No notes matched the given criteria", nil
	}

	lines := []string{fmt.Sprintf("=== Notes found: %d ===", len(res.Notes))}
	for _, n := range res.Notes {
		lines = append(lines, display.Separator, display.Summary(n))
		if full && display.IsLong(n.Content) {
			lines = append(lines, "   Full text: "+n.Content)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// Search shows the notes containing term within scope.
func (c *Commands) Search(ctx context.Context, term, scope string) (string, error) {
	res, err := c.svc.SearchNotes(ctx, term, scope)
	if err != nil {
		return failure(err)
	}
	if res.Empty() {
		return "No notes", nil
	}
	if len(res.Notes) == 0 {
		return fmt.Sprintf("No notes found for '%s'", term), nil
	}

	lines := []string{fmt.Sprintf("=== Search results: '%s' (%d found) ===", term, len(res.Notes))}
	for _, n := range res.Notes {
		lines = append(lines, display.Separator, display.Summary(n))
	}
	return strings.Join(lines, "\n"), nil
}

// Delete permanently removes a note.
func (c *Commands) Delete(ctx context.Context, id int) (string, error) {
	n, err := c.svc.DeleteNote(ctx, id)
	if err != nil {
		return failure(err)
	}
	return fmt.Sprintf("Note deleted: #%d - %s", n.ID, n.Title), nil
}

// Archive moves a note to the archive.
func (c *Commands) Archive(ctx context.Context, id int) (string, error) {
	res, err := c.svc.ArchiveNote(ctx, id)
	if err != nil {
		return failure(err)
	}
	if res.AlreadyArchived {
		return fmt.Sprintf("Note #%d is already archived", id), nil
	}
	return fmt.Sprintf("Note archived: #%d - %s", res.Note.ID, res.Note.Title), nil
}

// Edit applies a partial update to a note.
func (c *Commands) Edit(ctx context.Context, id int, in core.EditInput) (string, error) {
	n, err := c.svc.EditNote(ctx, id, in)
	if err != nil {
		return failure(err)
	}
	return fmt.Sprintf("Note updated: #%d - %s", n.ID, n.Title), nil
}

// Tags lists every tag with its usage count.
func (c *Commands) Tags(ctx context.Context) (string, error) {
	usage, err := c.svc.TagUsage(ctx)
	if err != nil {
		return failure(err)
	}
	if len(usage) == 0 {
		return "No tags found", nil
	}

	lines := []string{"=== All tags ==="}
	for _, u := range usage {
		lines = append(lines, fmt.Sprintf("#%s (%d notes)", u.Tag, u.Notes))
	}
	return strings.Join(lines, "\n"), nil
}

// Show prints a single note with its whole content.
func (c *Commands) Show(ctx context.Context, id int) (string, error) {
	n, err := c.svc.GetNote(ctx, id)
	if err != nil {
		return failure(err)
	}
	out := display.Summary(n)
	if display.IsLong(n.Content) {
		out += "\n   Full text: " + n.Content
	}
	return out, nil
}

// failure renders recoverable errors as text and propagates the rest.
func failure(err error) (string, error) {
	switch core.KindOf(err) {
	case core.KindValidation, core.KindNotFound:
		return "Error: " + core.MessageOf(err), nil
	default:
		return "", err
	}
}
