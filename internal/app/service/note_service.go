package service

import (
	"errors"

	"github.com/notesapp/backend/internal/app/model"
	"github.com/notesapp/backend/internal/app/repository"
	"github.com/notesapp/backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	// ErrNoteNotOwned is returned when a note mutation affects no rows.
	// A missing note and someone else's note produce this same error, so
	// responses never reveal whether a note id exists.
	ErrNoteNotOwned  = errors.New("not authorized or note not found")
	ErrNoStateChange = errors.New("no state fields provided")
)

// NoteStatePatch toggles the note flags; nil fields are left untouched
type NoteStatePatch struct {
	IsPinned   *bool
	IsFavorite *bool
	IsArchived *bool
}

type NoteService interface {
	CreateNote(userID uint, title, content string) (*model.Note, error)
	ListNotes(userID uint) ([]model.Note, error)
	GetNote(userID, noteID uint) (*model.Note, error)
	UpdateNote(userID, noteID uint, title, content string) error
	UpdateNoteState(userID, noteID uint, patch NoteStatePatch) error
	DeleteNote(userID, noteID uint) error
}

type noteService struct {
	noteRepo repository.NoteRepository
}

func NewNoteService(noteRepo repository.NoteRepository) NoteService {
	return &noteService{noteRepo: noteRepo}
}

func (s *noteService) CreateNote(userID uint, title, content string) (*model.Note, error) {
	note := &model.Note{
		UserID:  userID,
		Title:   title,
		Content: content,
	}

	if err := s.noteRepo.Create(note); err != nil {
		logger.Error("Failed to create note", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Note created", map[string]interface{}{
		"note_id": note.ID,
		"user_id": userID,
	})

	return note, nil
}

func (s *noteService) ListNotes(userID uint) ([]model.Note, error) {
	notes, err := s.noteRepo.FindAllByUser(userID)
	if err != nil {
		logger.Error("Failed to list notes", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return notes, nil
}

func (s *noteService) GetNote(userID, noteID uint) (*model.Note, error) {
	note, err := s.noteRepo.FindByIDAndUser(noteID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotOwned
		}
		logger.Error("Failed to fetch note", err, map[string]interface{}{
			"note_id": noteID,
			"user_id": userID,
		})
		return nil, err
	}
	return note, nil
}

func (s *noteService) UpdateNote(userID, noteID uint, title, content string) error {
	ok, err := s.noteRepo.UpdateOwned(noteID, userID, title, content)
	if err != nil {
		logger.Error("Failed to update note", err, map[string]interface{}{
			"note_id": noteID,
			"user_id": userID,
		})
		return err
	}
	if !ok {
		logger.Warn("Note update affected no rows", map[string]interface{}{
			"note_id": noteID,
			"user_id": userID,
		})
		return ErrNoteNotOwned
	}

	logger.Info("Note updated", map[string]interface{}{
		"note_id": noteID,
		"user_id": userID,
	})
	return nil
}

func (s *noteService) UpdateNoteState(userID, noteID uint, patch NoteStatePatch) error {
	state := make(map[string]interface{})
	if patch.IsPinned != nil {
		state["is_pinned"] = *patch.IsPinned
	}
	if patch.IsFavorite != nil {
		state["is_favorite"] = *patch.IsFavorite
	}
	if patch.IsArchived != nil {
		state["is_archived"] = *patch.IsArchived
	}
	if len(state) == 0 {
		return ErrNoStateChange
	}

	ok, err := s.noteRepo.UpdateStateOwned(noteID, userID, state)
	if err != nil {
		logger.Error("Failed to update note state", err, map[string]interface{}{
			"note_id": noteID,
			"user_id": userID,
		})
		return err
	}
	if !ok {
		return ErrNoteNotOwned
	}

	logger.Info("Note state updated", map[string]interface{}{
		"note_id": noteID,
		"user_id": userID,
	})
	return nil
}

func (s *noteService) DeleteNote(userID, noteID uint) error {
	ok, err := s.noteRepo.DeleteOwned(noteID, userID)
	if err != nil {
		logger.Error("Failed to delete note", err, map[string]interface{}{
			"note_id": noteID,
			"user_id": userID,
		})
		return err
	}
	if !ok {
		logger.Warn("Note delete affected no rows", map[string]interface{}{
			"note_id": noteID,
			"user_id": userID,
		})
		return ErrNoteNotOwned
	}

	logger.Info("Note deleted", map[string]interface{}{
		"note_id": noteID,
		"user_id": userID,
	})
	return nil
}
