package core_test

import (
	"testing"
	"time"

	"github.com/TimRka/Notes-manager-PL/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func TestNewNote(t *testing.T) {
	restore := core.SetClock(func() time.Time { return base })
	defer restore()

	t.Run("Defaults", func(t *testing.T) {
		n, err := core.NewNote(1, "Title", "")
		require.NoError(t, err)

		assert.Equal(t, core.CategoryOther, n.Category)
		assert.Equal(t, core.PriorityMedium, n.Priority)
		assert.Equal(t, core.StatusActive, n.Status)
		assert.Equal(t, []string{}, n.Tags)
		assert.Equal(t, base, n.CreatedAt)
		assert.Equal(t, base, n.UpdatedAt)
	})

	t.Run("Options", func(t *testing.T) {
		tags := []string{"a", "b"}
		n, err := core.NewNote(7, "Title", "Body",
			core.WithCategory(core.CategoryWork),
			core.WithPriority(core.PriorityHigh),
			core.WithTags(tags...),
			core.WithStatus(core.StatusArchived),
		)
		require.NoError(t, err)
		tags[0] = "mutated"

		assert.Equal(t, core.CategoryWork, n.Category)
		assert.Equal(t, core.PriorityHigh, n.Priority)
		assert.Equal(t, []string{"a", "b"}, n.Tags)
		assert.Equal(t, core.StatusArchived, n.Status)
	})

	t.Run("Rejects Empty Title", func(t *testing.T) {
		_, err := core.NewNote(1, "   ", "content")
		require.Error(t, err)
		assert.Equal(t, core.KindValidation, core.KindOf(err))
	})

	t.Run("Rejects Non Positive ID", func(t *testing.T) {
		for _, id := range []int{0, -3} {
			_, err := core.NewNote(id, "Title", "")
			require.Error(t, err)
			assert.True(t, core.IsKind(err, core.KindValidation))
		}
	})

	t.Run("Rejects Updated Before Created", func(t *testing.T) {
		_, err := core.NewNote(1, "Title", "", core.WithTimestamps(base, base.Add(-time.Second)))
		assert.True(t, core.IsKind(err, core.KindValidation))
	})

	t.Run("Rejects Unknown Enumeration Values", func(t *testing.T) {
		_, err := core.NewNote(1, "Title", "", core.WithCategory("bogus"))
		assert.True(t, core.IsKind(err, core.KindValidation))
	})
}

func TestNoteUpdate(t *testing.T) {
	t.Run("No Fields Only Refreshes UpdatedAt", func(t *testing.T) {
		restore := core.SetClock(core.StepClock(base, time.Minute))
		defer restore()

		n, err := core.NewNote(1, "Title", "Body", core.WithTags("x"))
		require.NoError(t, err)
		before := n.Clone()

		require.NoError(t, n.Update(core.Update{}))

		assert.True(t, n.UpdatedAt.After(before.UpdatedAt))
		assert.False(t, n.UpdatedAt.Before(n.CreatedAt))
		n.UpdatedAt = before.UpdatedAt
		assert.Equal(t, before, n)
	})

	t.Run("Same Instant Is Allowed", func(t *testing.T) {
		restore := core.SetClock(func() time.Time { return base })
		defer restore()

		n, err := core.NewNote(1, "Title", "")
		require.NoError(t, err)
		require.NoError(t, n.Update(core.Update{}))
		assert.Equal(t, n.CreatedAt, n.UpdatedAt)
	})

	t.Run("Clock Going Backwards Never Precedes CreatedAt", func(t *testing.T) {
		restore := core.SetClock(core.StepClock(base, -time.Hour))
		defer restore()

		n, err := core.NewNote(1, "Title", "")
		require.NoError(t, err)
		require.NoError(t, n.Update(core.Update{Content: ptr("new")}))
		assert.Equal(t, n.CreatedAt, n.UpdatedAt)
	})

	t.Run("Applies Only Present Fields", func(t *testing.T) {
		n, err := core.NewNote(1, "Title", "Body",
			core.WithCategory(core.CategoryStudy),
			core.WithTags("keep"),
		)
		require.NoError(t, err)

		require.NoError(t, n.Update(core.Update{
			Title:    ptr("New Title"),
			Priority: ptr(core.PriorityLow),
		}))

		assert.Equal(t, "New Title", n.Title)
		assert.Equal(t, "Body", n.Content)
		assert.Equal(t, core.CategoryStudy, n.Category)
		assert.Equal(t, core.PriorityLow, n.Priority)
		assert.Equal(t, []string{"keep"}, n.Tags)
	})

	t.Run("Empty Tags Clear", func(t *testing.T) {
		n, err := core.NewNote(1, "Title", "", core.WithTags("a"))
		require.NoError(t, err)
		require.NoError(t, n.Update(core.Update{Tags: []string{}}))
		assert.Empty(t, n.Tags)
	})

	t.Run("Invalid Update Changes Nothing", func(t *testing.T) {
		n, err := core.NewNote(1, "Title", "Body")
		require.NoError(t, err)
		before := n.Clone()

		err = n.Update(core.Update{Content: ptr("changed"), Title: ptr("")})
		assert.True(t, core.IsKind(err, core.KindValidation))
		assert.Equal(t, before, n)

		err = n.Update(core.Update{Content: ptr("changed"), Category: ptr(core.Category("bogus"))})
		assert.True(t, core.IsKind(err, core.KindValidation))
		assert.Equal(t, before, n)
	})
}

func TestNoteArchive(t *testing.T) {
	restore := core.SetClock(core.StepClock(base, time.Second))
	defer restore()

	n, err := core.NewNote(1, "Title", "")
	require.NoError(t, err)
	created := n.UpdatedAt

	assert.True(t, n.Archive())
	assert.Equal(t, core.StatusArchived, n.Status)
	assert.True(t, n.UpdatedAt.After(created))

	archivedAt := n.UpdatedAt
	assert.False(t, n.Archive())
	assert.Equal(t, archivedAt, n.UpdatedAt)
}
