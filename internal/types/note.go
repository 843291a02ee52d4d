package types

import "github.com/monocle-dev/notes/internal/models"

// CreateNoteRequest has no author field; the author is always the caller.
type CreateNoteRequest struct {
	Text    string `json:"text" binding:"required"`
	Private *bool  `json:"private"`
}

type UpdateNoteRequest struct {
	Text    *string `json:"text" binding:"omitempty,min=1"`
	Private *bool   `json:"private"`
}

func (r UpdateNoteRequest) Empty() bool {
	return r.Text == nil && r.Private == nil
}

type NoteResponse struct {
	ID       uint   `json:"id"`
	AuthorID uint   `json:"author_id"`
	Text     string `json:"text"`
	Private  bool   `json:"private"`
}

func NewNoteResponse(note *models.Note) NoteResponse {
	return NoteResponse{
		ID:       note.ID,
		AuthorID: note.AuthorID,
		Text:     note.Text,
		Private:  note.Private,
	}
}

func NewNoteListResponse(notes []models.Note) []NoteResponse {
	response := make([]NoteResponse, 0, len(notes))

	for i := range notes {
		response = append(response, NewNoteResponse(&notes[i]))
	}

	return response
}
