// Package display renders notes as terminal text.
package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/TimRka/Notes-manager-PL/pkg/core"
)

// PreviewLength is the number of characters of content shown in a summary.
const PreviewLength = 100

// DateLayout is the creation date layout of a summary (DD.MM.YYYY).
const DateLayout = "02.01.2006"

// Separator precedes every note block in listings.
var Separator = strings.Repeat("─", 50)

var statusGlyphs = map[core.Status]string{
	core.StatusActive:   "📝",
	core.StatusArchived: "📁",
}

var priorityGlyphs = map[core.Priority]string{
	core.PriorityLow:    "⬇",
	core.PriorityMedium: "●",
	core.PriorityHigh:   "⬆",
}

var categoryGlyphs = map[core.Category]string{
	core.CategoryWork:     "💼",
	core.CategoryPersonal: "👤",
	core.CategoryStudy:    "📚",
	core.CategoryShopping: "🛒",
	core.CategoryIdeas:    "💡",
	core.CategoryOther:    "📄",
}

// StatusGlyph returns the glyph of a status.
func StatusGlyph(s core.Status) string {
	if g, ok := statusGlyphs[s]; ok {
		return g
	}
	return statusGlyphs[core.StatusActive]
}

// PriorityGlyph returns the glyph of a priority.
func PriorityGlyph(p core.Priority) string {
	if g, ok := priorityGlyphs[p]; ok {
		return g
	}
	return priorityGlyphs[core.PriorityMedium]
}

// CategoryGlyph returns the glyph of a category.
func CategoryGlyph(c core.Category) string {
	if g, ok := categoryGlyphs[c]; ok {
		return g
	}
	return categoryGlyphs[core.CategoryOther]
}

// Summary renders the three-line summary of a note:
//
//	<status> [<priority>] <category> #<id>: <title>
//	   Created: DD.MM.YYYY[ | Tags: a, b]
//	   <content preview>[...]
func Summary(n core.Note) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s] %s #%d: %s\n",
		StatusGlyph(n.Status), PriorityGlyph(n.Priority), CategoryGlyph(n.Category), n.ID, n.Title)

	sb.WriteString("   Created: ")
	sb.WriteString(n.CreatedAt.In(time.Local).Format(DateLayout))
	if len(n.Tags) > 0 {
		sb.WriteString(" | Tags: ")
		sb.WriteString(strings.Join(n.Tags, ", "))
	}
	sb.WriteString("\n   ")

	preview, truncated := Truncate(n.Content, PreviewLength)
	sb.WriteString(preview)
	if truncated {
		sb.WriteString("...")
	}
	return sb.String()
}

// Truncate returns the first limit runes of s and whether anything was cut.
func Truncate(s string, limit int) (string, bool) {
	count := 0
	for i := range s {
		if count == limit {
			return s[:i], true
		}
		count++
	}
	return s, false
}

// IsLong reports whether content exceeds the summary preview.
func IsLong(content string) bool {
	_, truncated := Truncate(content, PreviewLength)
	return truncated
}
