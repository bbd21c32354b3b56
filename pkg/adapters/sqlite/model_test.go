package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/TimRka/Notes-manager-PL/pkg/core"
	"gorm.io/datatypes"
)

func TestLoadAll_SkipsMalformedRows(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "notes.db")

	repo := NewRepository(Config{Path: path})
	defer repo.Close()
	db, err := repo.conn(ctx)
	if err != nil {
		t.Fatal(err)
	}

	rows := []noteModel{
		{ID: 1, Title: "Good", Category: "work", Priority: "low", Status: "active", Tags: datatypes.JSON(`["a"]`), Created: "2024-01-01T00:00:00Z", Updated: "2024-01-01T00:00:00Z"},
		{ID: 2, Title: "Bad category", Category: "misc", Priority: "low", Status: "active", Created: "2024-01-01T00:00:00Z", Updated: "2024-01-01T00:00:00Z"},
		{ID: 3, Title: "Bad tags", Category: "work", Priority: "low", Status: "active", Tags: datatypes.JSON(`{"x":1}`), Created: "2024-01-01T00:00:00Z", Updated: "2024-01-01T00:00:00Z"},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	notes, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(notes) != 1 || notes[0].ID != 1 {
		t.Fatalf("expected only note #1, got %+v", notes)
	}
	if state := repo.State().(RepositoryState); state.Skipped != 2 {
		t.Errorf("expected 2 skipped rows, got %d", state.Skipped)
	}

	strict := NewRepository(Config{Path: path, Strict: true})
	defer strict.Close()
	if _, err := strict.LoadAll(ctx); !core.IsKind(err, core.KindFormat) {
		t.Errorf("expected format error in strict mode, got %v", err)
	}
}

func TestModelRoundtrip(t *testing.T) {
	n, err := core.NewNote(9, "Title", "Body", core.WithTags("t1", "t2"))
	if err != nil {
		t.Fatal(err)
	}
	m, err := toModel(n)
	if err != nil {
		t.Fatal(err)
	}
	if string(m.Tags) != `["t1","t2"]` {
		t.Errorf("unexpected tags column: %s", m.Tags)
	}
	got, err := m.toNote()
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != 9 || got.Title != "Title" || len(got.Tags) != 2 || !got.CreatedAt.Equal(n.CreatedAt) {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
}
