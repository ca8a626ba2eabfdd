package repository

import (
	"path/filepath"
	"testing"

	"keepnotes/cmd/internal/domain/entity"
	"keepnotes/cmd/internal/domain/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *DefaultNoteRepository {
	t.Helper()

	db, err := sqlite.Init(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	return NewNoteRepository(db)
}

func strptr(s string) *string { return &s }

func TestCreateAssignsIncreasingIDs(t *testing.T) {
	repo := newTestRepo(t)

	a := &entity.Note{Title: "a", Color: entity.DefaultColor, Timestamp: 1}
	b := &entity.Note{Title: "b", Color: entity.DefaultColor, Timestamp: 2}
	require.NoError(t, repo.Create(a))
	require.NoError(t, repo.Create(b))

	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)
}

func TestDeletedIDsAreNotReused(t *testing.T) {
	repo := newTestRepo(t)

	first := &entity.Note{Title: "first", Color: entity.DefaultColor}
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Delete(first.ID))

	second := &entity.Note{Title: "second", Color: entity.DefaultColor}
	require.NoError(t, repo.Create(second))
	assert.Greater(t, second.ID, first.ID)
}

func TestFindAllOrdersByIDDescending(t *testing.T) {
	repo := newTestRepo(t)
	for _, title := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(&entity.Note{Title: title, Color: entity.DefaultColor}))
	}

	notes, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, []int{3, 2, 1}, []int{notes[0].ID, notes[1].ID, notes[2].ID})
}

func TestFindByIDMissing(t *testing.T) {
	repo := newTestRepo(t)

	note, err := repo.FindByID(42)
	require.NoError(t, err)
	assert.Nil(t, note)
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	repo := newTestRepo(t)
	note := &entity.Note{Title: "Shopping", Content: "milk", Color: "#ff0000", Timestamp: 10}
	require.NoError(t, repo.Create(note))

	updated, err := repo.Update(note.ID, entity.NotePatch{Content: strptr("milk, eggs")}, 20)
	require.NoError(t, err)

	assert.Equal(t, "Shopping", updated.Title)
	assert.Equal(t, "milk, eggs", updated.Content)
	assert.Equal(t, "#ff0000", updated.Color)
	assert.EqualValues(t, 20, updated.Timestamp)
}

func TestCreateKeepsEmptyValues(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.Create(&entity.Note{Title: "", Content: "", Color: "", Timestamp: 1}))

	notes, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "", notes[0].Title)
	assert.Equal(t, "", notes[0].Color)
}

func TestUpdateAndDeleteMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Update(7, entity.NotePatch{Title: strptr("x")}, 1)
	assert.ErrorIs(t, err, entity.ErrNoteNotFound)

	assert.ErrorIs(t, repo.Delete(7), entity.ErrNoteNotFound)
}

func TestClosedDatabaseSurfacesPersistenceError(t *testing.T) {
	db, err := sqlite.Init(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	repo := NewNoteRepository(db)
	require.NoError(t, sqlite.Close(db))

	_, err = repo.FindAll()
	assert.ErrorIs(t, err, entity.ErrPersistence)

	err = repo.Create(&entity.Note{Title: "x"})
	assert.ErrorIs(t, err, entity.ErrPersistence)
}
