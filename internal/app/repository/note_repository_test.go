package repository

import (
	"testing"
	"time"

	"github.com/notesapp/backend/internal/app/model"
	"github.com/notesapp/backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupNoteTest(t *testing.T) (*gorm.DB, NoteRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewNoteRepository(testDB)
	return testDB, repo
}

func createTestNote(t *testing.T, repo NoteRepository, userID uint, title string) *model.Note {
	note := &model.Note{
		UserID:  userID,
		Title:   title,
		Content: "content",
	}
	require.NoError(t, repo.Create(note))
	return note
}

func TestNoteRepository_FindAllByUser(t *testing.T) {
	testDB, repo := setupNoteTest(t)
	defer db.CleanupTestDB(testDB)

	createTestNote(t, repo, 1, "mine one")
	createTestNote(t, repo, 1, "mine two")
	createTestNote(t, repo, 2, "someone else's")

	notes, err := repo.FindAllByUser(1)
	require.NoError(t, err)
	assert.Len(t, notes, 2)
	for _, n := range notes {
		assert.Equal(t, uint(1), n.UserID)
	}

	notes, err = repo.FindAllByUser(99)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestNoteRepository_FindAllByUser_NewestFirst(t *testing.T) {
	testDB, repo := setupNoteTest(t)
	defer db.CleanupTestDB(testDB)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	oldest := &model.Note{UserID: 1, Title: "oldest", CreatedAt: base}
	middle := &model.Note{UserID: 1, Title: "middle", CreatedAt: base.Add(time.Hour)}
	newest := &model.Note{UserID: 1, Title: "newest", CreatedAt: base.Add(2 * time.Hour)}
	require.NoError(t, repo.Create(oldest))
	require.NoError(t, repo.Create(middle))
	require.NoError(t, repo.Create(newest))

	// Pinning does not reorder the listing
	ok, err := repo.UpdateStateOwned(oldest.ID, 1, map[string]interface{}{"is_pinned": true})
	require.NoError(t, err)
	require.True(t, ok)

	notes, err := repo.FindAllByUser(1)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "newest", notes[0].Title)
	assert.Equal(t, "middle", notes[1].Title)
	assert.Equal(t, "oldest", notes[2].Title)
}

func TestNoteRepository_FindByIDAndUser(t *testing.T) {
	testDB, repo := setupNoteTest(t)
	defer db.CleanupTestDB(testDB)

	note := createTestNote(t, repo, 1, "mine")

	tests := []struct {
		name    string
		noteID  uint
		userID  uint
		wantErr bool
	}{
		{
			name:    "Owner finds note",
			noteID:  note.ID,
			userID:  1,
			wantErr: false,
		},
		{
			name:    "Other user cannot see note",
			noteID:  note.ID,
			userID:  2,
			wantErr: true,
		},
		{
			name:    "Nonexistent note",
			noteID:  9999,
			userID:  1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.FindByIDAndUser(tt.noteID, tt.userID)

			if tt.wantErr {
				// Foreign and missing notes fail identically
				assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
				assert.Nil(t, found)
			} else {
				require.NoError(t, err)
				require.NotNil(t, found)
				assert.Equal(t, note.Title, found.Title)
			}
		})
	}
}

func TestNoteRepository_UpdateOwned(t *testing.T) {
	testDB, repo := setupNoteTest(t)
	defer db.CleanupTestDB(testDB)

	note := createTestNote(t, repo, 1, "original")

	// Non-owner affects zero rows
	ok, err := repo.UpdateOwned(note.ID, 2, "hijacked", "x")
	require.NoError(t, err)
	assert.False(t, ok)

	// Owner affects exactly one row
	ok, err = repo.UpdateOwned(note.ID, 1, "updated", "new content")
	require.NoError(t, err)
	assert.True(t, ok)

	found, err := repo.FindByIDAndUser(note.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "updated", found.Title)
	assert.Equal(t, "new content", found.Content)

	// Nonexistent note behaves like a foreign one
	ok, err = repo.UpdateOwned(9999, 1, "title", "content")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNoteRepository_UpdateStateOwned(t *testing.T) {
	testDB, repo := setupNoteTest(t)
	defer db.CleanupTestDB(testDB)

	note := createTestNote(t, repo, 1, "flaggable")

	ok, err := repo.UpdateStateOwned(note.ID, 1, map[string]interface{}{"is_pinned": true})
	require.NoError(t, err)
	assert.True(t, ok)

	found, err := repo.FindByIDAndUser(note.ID, 1)
	require.NoError(t, err)
	assert.True(t, found.IsPinned)
	assert.False(t, found.IsFavorite)

	// Flags can be cleared back to false
	ok, err = repo.UpdateStateOwned(note.ID, 1, map[string]interface{}{"is_pinned": false})
	require.NoError(t, err)
	assert.True(t, ok)

	found, err = repo.FindByIDAndUser(note.ID, 1)
	require.NoError(t, err)
	assert.False(t, found.IsPinned)

	// Non-owner cannot toggle
	ok, err = repo.UpdateStateOwned(note.ID, 2, map[string]interface{}{"is_archived": true})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNoteRepository_DeleteOwned(t *testing.T) {
	testDB, repo := setupNoteTest(t)
	defer db.CleanupTestDB(testDB)

	note := createTestNote(t, repo, 1, "deletable")

	// Non-owner affects zero rows and the note survives
	ok, err := repo.DeleteOwned(note.ID, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.FindByIDAndUser(note.ID, 1)
	require.NoError(t, err)

	// Owner deletes
	ok, err = repo.DeleteOwned(note.ID, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = repo.FindByIDAndUser(note.ID, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
