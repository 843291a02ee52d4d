package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/notes/internal/apperr"
	"github.com/monocle-dev/notes/internal/policy"
	"github.com/monocle-dev/notes/internal/store"
	"github.com/monocle-dev/notes/internal/types"
	"github.com/monocle-dev/notes/internal/utils"
)

// GetNote answers 403, not 404, for a private note of another user.
func (h *Handler) GetNote(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	s, err := utils.GetStore(ctx)
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	noteID, err := utils.ParseID(ctx, "id")
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	note, err := s.NoteGet(ctx.Request.Context(), noteID)
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	if !policy.CanViewNote(currentUser, note) {
		apperr.Abort(ctx, apperr.Forbidden("This note can't be showed"))
		return
	}

	ctx.JSON(http.StatusOK, types.NewNoteResponse(note))
}

func (h *Handler) ListNotes(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	s, err := utils.GetStore(ctx)
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	notes, err := s.NoteListVisible(ctx.Request.Context(), currentUser.ID)
	if err != nil {
		apperr.Abort(ctx, fmt.Errorf("list notes: %w", err))
		return
	}

	ctx.JSON(http.StatusOK, types.NewNoteListResponse(notes))
}

func (h *Handler) CreateNote(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	var body types.CreateNoteRequest

	if !bindJSON(ctx, &body) {
		return
	}

	s, err := utils.GetStore(ctx)
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	private := body.Private != nil && *body.Private

	note, err := s.NoteCreate(ctx.Request.Context(), currentUser.ID, body.Text, private)
	if err != nil {
		apperr.Abort(ctx, fmt.Errorf("create note: %w", err))
		return
	}

	ctx.JSON(http.StatusCreated, types.NewNoteResponse(note))
}

// UpdateNote applies only the fields present in the body.
func (h *Handler) UpdateNote(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	var body types.UpdateNoteRequest

	if !bindJSON(ctx, &body) {
		return
	}

	if body.Empty() {
		apperr.Abort(ctx, apperr.Invalid("body", "at least one of text, private is required"))
		return
	}

	s, err := utils.GetStore(ctx)
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	noteID, err := utils.ParseID(ctx, "id")
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	note, err := s.NoteGet(ctx.Request.Context(), noteID)
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	if !policy.CanEditNote(currentUser, note) {
		apperr.Abort(ctx, apperr.Forbidden("This note can't be changed, because it's owned other person"))
		return
	}

	note, err = s.NoteUpdate(ctx.Request.Context(), noteID, store.NoteFields{
		Text:    body.Text,
		Private: body.Private,
	})
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewNoteResponse(note))
}

func (h *Handler) DeleteNote(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	s, err := utils.GetStore(ctx)
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	noteID, err := utils.ParseID(ctx, "id")
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	note, err := s.NoteGet(ctx.Request.Context(), noteID)
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	if !policy.CanDeleteNote(currentUser, note) {
		apperr.Abort(ctx, apperr.Forbidden("This note can't be deleted, because it's owned other person"))
		return
	}

	if err := s.NoteDelete(ctx.Request.Context(), noteID); err != nil {
		apperr.Abort(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.MessageResponse{
		Message: fmt.Sprintf("Note with id=%d has deleted", noteID),
	})
}
