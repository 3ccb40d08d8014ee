package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/notesapp/backend/internal/app/service"
	apperrors "github.com/notesapp/backend/internal/errors"
	"github.com/notesapp/backend/internal/middleware"
)

type NoteController struct {
	noteService service.NoteService
}

func NewNoteController(noteService service.NoteService) *NoteController {
	return &NoteController{
		noteService: noteService,
	}
}

type CreateNoteRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

type UpdateNoteRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

type UpdateNoteStateRequest struct {
	IsPinned   *bool `json:"is_pinned"`
	IsFavorite *bool `json:"is_favorite"`
	IsArchived *bool `json:"is_archived"`
}

func parseNoteID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid note ID")
		return 0, false
	}
	return uint(id), true
}

// CreateNote creates a note owned by the authenticated user
// POST /api/notes
func (ctrl *NoteController) CreateNote(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create note request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.RespondWithValidationError(c, apperrors.BindingFields(err))
		return
	}

	note, err := ctrl.noteService.CreateNote(userID, req.Title, req.Content)
	if err != nil {
		log.Error("Failed to create note", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create note")
		return
	}

	log.Info("Note created", map[string]interface{}{
		"user_id": userID,
		"note_id": note.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Note created successfully",
		"noteId":  note.ID,
	})
}

// ListNotes returns all notes owned by the authenticated user
// GET /api/notes
func (ctrl *NoteController) ListNotes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	notes, err := ctrl.noteService.ListNotes(userID)
	if err != nil {
		log.Error("Failed to list notes", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list notes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"notes":   notes,
	})
}

// GetNote returns a single note owned by the authenticated user
// GET /api/notes/:id
func (ctrl *NoteController) GetNote(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	noteID, ok := parseNoteID(c)
	if !ok {
		return
	}

	note, err := ctrl.noteService.GetNote(userID, noteID)
	if err != nil {
		if errors.Is(err, service.ErrNoteNotOwned) {
			// Reads answer 404; whether the note exists under another
			// owner is not revealed either way
			log.Warn("Note not found for user", map[string]interface{}{
				"user_id": userID,
				"note_id": noteID,
			})
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Note not found")
			return
		}
		log.Error("Failed to get note", err, map[string]interface{}{
			"user_id": userID,
			"note_id": noteID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get note")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"note":    note,
	})
}

// UpdateNote replaces the title and content of an owned note
// PUT /api/notes/:id
func (ctrl *NoteController) UpdateNote(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	noteID, ok := parseNoteID(c)
	if !ok {
		return
	}

	var req UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update note request", map[string]interface{}{
			"user_id": userID,
			"note_id": noteID,
			"error":   err.Error(),
		})
		apperrors.RespondWithValidationError(c, apperrors.BindingFields(err))
		return
	}

	if err := ctrl.noteService.UpdateNote(userID, noteID, req.Title, req.Content); err != nil {
		if errors.Is(err, service.ErrNoteNotOwned) {
			log.Warn("Note update rejected", map[string]interface{}{
				"user_id": userID,
				"note_id": noteID,
			})
			apperrors.Forbidden(c, "Not authorized or note not found")
			return
		}
		log.Error("Failed to update note", err, map[string]interface{}{
			"user_id": userID,
			"note_id": noteID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update note")
		return
	}

	log.Info("Note updated", map[string]interface{}{
		"user_id": userID,
		"note_id": noteID,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Note updated successfully",
	})
}

// UpdateNoteState toggles pinned/favorite/archived flags on an owned note
// PATCH /api/notes/:id/state
func (ctrl *NoteController) UpdateNoteState(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	noteID, ok := parseNoteID(c)
	if !ok {
		return
	}

	var req UpdateNoteStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid note state request", map[string]interface{}{
			"user_id": userID,
			"note_id": noteID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	patch := service.NoteStatePatch{
		IsPinned:   req.IsPinned,
		IsFavorite: req.IsFavorite,
		IsArchived: req.IsArchived,
	}

	if err := ctrl.noteService.UpdateNoteState(userID, noteID, patch); err != nil {
		if errors.Is(err, service.ErrNoStateChange) {
			apperrors.BadRequest(c, apperrors.ValidationRequired, "No state fields provided")
			return
		}
		if errors.Is(err, service.ErrNoteNotOwned) {
			log.Warn("Note state change rejected", map[string]interface{}{
				"user_id": userID,
				"note_id": noteID,
			})
			apperrors.Forbidden(c, "Not authorized or note not found")
			return
		}
		log.Error("Failed to update note state", err, map[string]interface{}{
			"user_id": userID,
			"note_id": noteID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update note state")
		return
	}

	log.Info("Note state updated", map[string]interface{}{
		"user_id": userID,
		"note_id": noteID,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Note state updated successfully",
	})
}

// DeleteNote deletes an owned note
// DELETE /api/notes/:id
func (ctrl *NoteController) DeleteNote(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	noteID, ok := parseNoteID(c)
	if !ok {
		return
	}

	if err := ctrl.noteService.DeleteNote(userID, noteID); err != nil {
		if errors.Is(err, service.ErrNoteNotOwned) {
			log.Warn("Note delete rejected", map[string]interface{}{
				"user_id": userID,
				"note_id": noteID,
			})
			apperrors.Forbidden(c, "Not authorized or note not found")
			return
		}
		log.Error("Failed to delete note", err, map[string]interface{}{
			"user_id": userID,
			"note_id": noteID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete note")
		return
	}

	log.Info("Note deleted", map[string]interface{}{
		"user_id": userID,
		"note_id": noteID,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Note deleted successfully",
	})
}
