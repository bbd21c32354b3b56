package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TimRka/Notes-manager-PL/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRepository implements core.Repository in memory and records how often
// the collection was saved.
type MockRepository struct {
	notes     []core.Note
	saves     int
	reasons   []string
	loadErr   error
	saveErr   error
	seqPolicy bool
	lastID    int
}

func NewMockRepository(notes ...core.Note) *MockRepository {
	return &MockRepository{notes: notes}
}

func (m *MockRepository) Initialize(ctx context.Context) error { return nil }
func (m *MockRepository) Close() error                         { return nil }

func (m *MockRepository) LoadAll(ctx context.Context) ([]core.Note, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]core.Note, len(m.notes))
	for i, n := range m.notes {
		out[i] = n.Clone()
	}
	return out, nil
}

func (m *MockRepository) SaveAll(ctx context.Context, notes []core.Note) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	if reason, ok := core.ChangeReason(ctx); ok {
		m.reasons = append(m.reasons, reason)
	}
	m.notes = append([]core.Note{}, notes...)
	m.lastID = max(m.lastID, core.MaxID(notes))
	return nil
}

func (m *MockRepository) NextID(ctx context.Context) (int, error) {
	if m.seqPolicy {
		return max(m.lastID, core.MaxID(m.notes)) + 1, nil
	}
	return core.MaxID(m.notes) + 1, nil
}

func (m *MockRepository) AllTags(ctx context.Context) ([]string, error) {
	return core.CollectTags(m.notes), nil
}

func (m *MockRepository) Add(ctx context.Context, n core.Note) (core.Note, error) {
	if n.ID == 0 {
		n.ID, _ = m.NextID(ctx)
	}
	return n, m.SaveAll(ctx, append(m.notes, n))
}

func (m *MockRepository) Get(ctx context.Context, id int) (core.Note, bool, error) {
	for _, n := range m.notes {
		if n.ID == id {
			return n, true, nil
		}
	}
	return core.Note{}, false, nil
}

func (m *MockRepository) Update(ctx context.Context, n core.Note) (bool, error) {
	for i := range m.notes {
		if m.notes[i].ID == n.ID {
			m.notes[i] = n
			return true, nil
		}
	}
	return false, nil
}

func (m *MockRepository) Delete(ctx context.Context, id int) (bool, error) {
	for i := range m.notes {
		if m.notes[i].ID == id {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func TestService_AddNote(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults And Sequential IDs", func(t *testing.T) {
		repo := NewMockRepository()
		svc := core.NewService(repo, nil)

		n, err := svc.AddNote(ctx, core.AddInput{Title: "Test Title", Content: "Body"})
		require.NoError(t, err)
		assert.Equal(t, 1, n.ID)
		assert.Equal(t, core.CategoryOther, n.Category)
		assert.Equal(t, core.PriorityMedium, n.Priority)
		assert.Equal(t, []string{}, n.Tags)

		n, err = svc.AddNote(ctx, core.AddInput{Title: "Second", Category: "WORK", Priority: "High", Tags: []string{"x"}})
		require.NoError(t, err)
		assert.Equal(t, 2, n.ID)
		assert.Equal(t, core.CategoryWork, n.Category)
		assert.Equal(t, core.PriorityHigh, n.Priority)

		assert.Equal(t, 2, repo.saves)
		assert.Equal(t, []string{"add note #1", "add note #2"}, repo.reasons)
	})

	t.Run("Invalid Input Does Not Save", func(t *testing.T) {
		repo := NewMockRepository()
		svc := core.NewService(repo, nil)

		for _, in := range []core.AddInput{
			{Title: "T", Category: "invalid_category"},
			{Title: "T", Priority: "invalid_priority"},
			{Title: ""},
		} {
			_, err := svc.AddNote(ctx, in)
			assert.True(t, core.IsKind(err, core.KindValidation), "input %+v", in)
		}
		assert.Zero(t, repo.saves)
	})

	t.Run("ID Reuse After Deleting Highest", func(t *testing.T) {
		repo := NewMockRepository()
		svc := core.NewService(repo, nil)

		n, err := svc.AddNote(ctx, core.AddInput{Title: "One"})
		require.NoError(t, err)
		_, err = svc.DeleteNote(ctx, n.ID)
		require.NoError(t, err)

		n, err = svc.AddNote(ctx, core.AddInput{Title: "Again"})
		require.NoError(t, err)
		assert.Equal(t, 1, n.ID)
	})

	t.Run("Sequence Policy Never Reuses", func(t *testing.T) {
		repo := NewMockRepository()
		repo.seqPolicy = true
		svc := core.NewService(repo, nil)

		n, err := svc.AddNote(ctx, core.AddInput{Title: "One"})
		require.NoError(t, err)
		_, err = svc.DeleteNote(ctx, n.ID)
		require.NoError(t, err)

		n, err = svc.AddNote(ctx, core.AddInput{Title: "Again"})
		require.NoError(t, err)
		assert.Equal(t, 2, n.ID)
	})

	t.Run("Storage Error Propagates", func(t *testing.T) {
		repo := NewMockRepository()
		repo.saveErr = core.StorageError("write store", errors.New("disk full"))
		svc := core.NewService(repo, nil)

		_, err := svc.AddNote(ctx, core.AddInput{Title: "T"})
		assert.Equal(t, core.KindStorage, core.KindOf(err))
	})
}

func TestService_ListNotes(t *testing.T) {
	ctx := context.Background()

	t.Run("Default Is Active Only", func(t *testing.T) {
		repo := NewMockRepository(
			mustNote(t, 1, "Active", "", 2*time.Hour),
			mustNote(t, 2, "Archived", "", time.Hour, core.WithStatus(core.StatusArchived)),
		)
		svc := core.NewService(repo, nil)

		res, err := svc.ListNotes(ctx, core.ListOptions{})
		require.NoError(t, err)
		assert.Equal(t, []int{1}, ids(res.Notes))
		assert.Equal(t, 2, res.Total)

		res, err = svc.ListNotes(ctx, core.ListOptions{Status: "archived"})
		require.NoError(t, err)
		assert.Equal(t, []int{2}, ids(res.Notes))

		res, err = svc.ListNotes(ctx, core.ListOptions{Status: "all"})
		require.NoError(t, err)
		assert.Equal(t, []int{2, 1}, ids(res.Notes))
	})

	t.Run("Invalid Filter Does Not Save", func(t *testing.T) {
		repo := NewMockRepository(fixtureNotes(t)...)
		svc := core.NewService(repo, nil)

		_, err := svc.ListNotes(ctx, core.ListOptions{Category: "bogus"})
		assert.True(t, core.IsKind(err, core.KindValidation))
		assert.Zero(t, repo.saves)
	})

	t.Run("Empty Collection", func(t *testing.T) {
		svc := core.NewService(NewMockRepository(), nil)
		res, err := svc.ListNotes(ctx, core.ListOptions{})
		require.NoError(t, err)
		assert.True(t, res.Empty())
	})

	t.Run("Load Error Propagates", func(t *testing.T) {
		repo := NewMockRepository()
		repo.loadErr = core.StorageError("read store", errors.New("permission denied"))
		_, err := core.NewService(repo, nil).ListNotes(ctx, core.ListOptions{})
		assert.Equal(t, core.KindStorage, core.KindOf(err))
	})
}

func TestService_SearchNotes(t *testing.T) {
	ctx := context.Background()
	svc := core.NewService(NewMockRepository(fixtureNotes(t)...), nil)

	res, err := svc.SearchNotes(ctx, "tag3", "tags")
	require.NoError(t, err)
	assert.Equal(t, []int{2}, ids(res.Notes))

	_, err = svc.SearchNotes(ctx, "x", "body")
	assert.True(t, core.IsKind(err, core.KindValidation))
}

func TestService_DeleteNote(t *testing.T) {
	ctx := context.Background()

	t.Run("Removes Note", func(t *testing.T) {
		repo := NewMockRepository(fixtureNotes(t)...)
		svc := core.NewService(repo, nil)

		n, err := svc.DeleteNote(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Test Note 1", n.Title)
		assert.Equal(t, []int{2, 3}, ids(repo.notes))
		assert.Equal(t, 1, repo.saves)
	})

	t.Run("Missing ID", func(t *testing.T) {
		repo := NewMockRepository(fixtureNotes(t)...)
		svc := core.NewService(repo, nil)

		_, err := svc.DeleteNote(ctx, 999)
		assert.True(t, core.IsKind(err, core.KindNotFound))
		assert.Equal(t, "note #999 not found", core.MessageOf(err))
		assert.Zero(t, repo.saves)
	})
}

func TestService_ArchiveNote(t *testing.T) {
	ctx := context.Background()
	repo := NewMockRepository(fixtureNotes(t)...)
	svc := core.NewService(repo, nil)

	res, err := svc.ArchiveNote(ctx, 1)
	require.NoError(t, err)
	assert.False(t, res.AlreadyArchived)
	assert.Equal(t, core.StatusArchived, repo.notes[0].Status)
	assert.Equal(t, 1, repo.saves)

	res, err = svc.ArchiveNote(ctx, 3)
	require.NoError(t, err)
	assert.True(t, res.AlreadyArchived)
	assert.Equal(t, 1, repo.saves)

	_, err = svc.ArchiveNote(ctx, 999)
	assert.True(t, core.IsKind(err, core.KindNotFound))
	assert.Equal(t, 1, repo.saves)
}

func TestService_EditNote(t *testing.T) {
	ctx := context.Background()

	t.Run("Partial", func(t *testing.T) {
		repo := NewMockRepository(fixtureNotes(t)...)
		svc := core.NewService(repo, nil)

		n, err := svc.EditNote(ctx, 1, core.EditInput{Title: ptr("Updated Title")})
		require.NoError(t, err)
		assert.Equal(t, "Updated Title", n.Title)
		assert.Equal(t, "Test content 1", n.Content)
		assert.Equal(t, core.CategoryWork, n.Category)
		assert.Equal(t, []string{"tag1", "tag2"}, n.Tags)
		assert.Equal(t, "Updated Title", repo.notes[0].Title)
	})

	t.Run("Full", func(t *testing.T) {
		repo := NewMockRepository(fixtureNotes(t)...)
		svc := core.NewService(repo, nil)

		n, err := svc.EditNote(ctx, 1, core.EditInput{
			Title:    ptr("New Title"),
			Content:  ptr("New Content"),
			Category: ptr("personal"),
			Priority: ptr("LOW"),
			Tags:     []string{"newtag1", "newtag2"},
		})
		require.NoError(t, err)
		assert.Equal(t, core.CategoryPersonal, n.Category)
		assert.Equal(t, core.PriorityLow, n.Priority)
		assert.Equal(t, []string{"newtag1", "newtag2"}, n.Tags)
	})

	t.Run("Errors Do Not Save", func(t *testing.T) {
		repo := NewMockRepository(fixtureNotes(t)...)
		svc := core.NewService(repo, nil)

		_, err := svc.EditNote(ctx, 999, core.EditInput{Title: ptr("x")})
		assert.True(t, core.IsKind(err, core.KindNotFound))

		_, err = svc.EditNote(ctx, 1, core.EditInput{Category: ptr("invalid_category")})
		assert.True(t, core.IsKind(err, core.KindValidation))

		_, err = svc.EditNote(ctx, 1, core.EditInput{Priority: ptr("invalid_priority")})
		assert.True(t, core.IsKind(err, core.KindValidation))

		_, err = svc.EditNote(ctx, 1, core.EditInput{Title: ptr("")})
		assert.True(t, core.IsKind(err, core.KindValidation))

		assert.Zero(t, repo.saves)
	})
}

func TestService_TagUsage(t *testing.T) {
	svc := core.NewService(NewMockRepository(fixtureNotes(t)...), nil)

	usage, err := svc.TagUsage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []core.TagCount{
		{Tag: "tag1", Notes: 1},
		{Tag: "tag2", Notes: 2},
		{Tag: "tag3", Notes: 1},
	}, usage)
}

func TestService_GetNote(t *testing.T) {
	svc := core.NewService(NewMockRepository(fixtureNotes(t)...), nil)

	n, err := svc.GetNote(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Test Note 2", n.Title)

	_, err = svc.GetNote(context.Background(), 42)
	assert.True(t, core.IsKind(err, core.KindNotFound))
}

func TestService_State(t *testing.T) {
	state, ok := core.NewService(NewMockRepository(), nil).State().(core.ServiceState)
	require.True(t, ok)
	assert.Equal(t, "repository", state.RepositoryType)
}
