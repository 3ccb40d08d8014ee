package repository

import (
	"github.com/notesapp/backend/internal/app/model"
	"github.com/notesapp/backend/pkg/logger"
	"gorm.io/gorm"
)

// NoteRepository scopes every read and mutation to the owning user. The
// owner id is conjoined with the note id in the query predicate itself, so
// there is no window between an existence check and an ownership check.
// Mutations report whether a row was affected; zero rows means the note is
// missing or belongs to someone else, and callers must not distinguish the
// two.
type NoteRepository interface {
	Create(note *model.Note) error
	FindAllByUser(userID uint) ([]model.Note, error)
	FindByIDAndUser(noteID, userID uint) (*model.Note, error)
	UpdateOwned(noteID, userID uint, title, content string) (bool, error)
	UpdateStateOwned(noteID, userID uint, state map[string]interface{}) (bool, error)
	DeleteOwned(noteID, userID uint) (bool, error)
}

type noteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(note *model.Note) error {
	logger.Debug("Creating note in database", map[string]interface{}{
		"user_id": note.UserID,
	})

	if err := r.db.Create(note).Error; err != nil {
		logger.Error("Failed to create note in database", err, map[string]interface{}{
			"user_id": note.UserID,
		})
		return err
	}

	logger.Debug("Note created in database", map[string]interface{}{
		"note_id": note.ID,
		"user_id": note.UserID,
	})
	return nil
}

func (r *noteRepository) FindAllByUser(userID uint) ([]model.Note, error) {
	var notes []model.Note
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		logger.Error("Failed to list notes from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) FindByIDAndUser(noteID, userID uint) (*model.Note, error) {
	var note model.Note
	err := r.db.Where("id = ? AND user_id = ?", noteID, userID).First(&note).Error
	if err != nil {
		logger.Error("Failed to find note in database", err, map[string]interface{}{
			"note_id": noteID,
			"user_id": userID,
		})
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) UpdateOwned(noteID, userID uint, title, content string) (bool, error) {
	result := r.db.Model(&model.Note{}).
		Where("id = ? AND user_id = ?", noteID, userID).
		Updates(map[string]interface{}{
			"title":   title,
			"content": content,
		})
	if result.Error != nil {
		logger.Error("Failed to update note in database", result.Error, map[string]interface{}{
			"note_id": noteID,
			"user_id": userID,
		})
		return false, result.Error
	}

	logger.Debug("Note update attempted", map[string]interface{}{
		"note_id":       noteID,
		"user_id":       userID,
		"rows_affected": result.RowsAffected,
	})
	return result.RowsAffected == 1, nil
}

func (r *noteRepository) UpdateStateOwned(noteID, userID uint, state map[string]interface{}) (bool, error) {
	result := r.db.Model(&model.Note{}).
		Where("id = ? AND user_id = ?", noteID, userID).
		Updates(state)
	if result.Error != nil {
		logger.Error("Failed to update note state in database", result.Error, map[string]interface{}{
			"note_id": noteID,
			"user_id": userID,
		})
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *noteRepository) DeleteOwned(noteID, userID uint) (bool, error) {
	result := r.db.Where("id = ? AND user_id = ?", noteID, userID).
		Delete(&model.Note{})
	if result.Error != nil {
		logger.Error("Failed to delete note from database", result.Error, map[string]interface{}{
			"note_id": noteID,
			"user_id": userID,
		})
		return false, result.Error
	}

	logger.Debug("Note delete attempted", map[string]interface{}{
		"note_id":       noteID,
		"user_id":       userID,
		"rows_affected": result.RowsAffected,
	})
	return result.RowsAffected == 1, nil
}
