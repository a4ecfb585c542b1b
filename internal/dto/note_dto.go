package dto

// NoteCreateRequest create parameters. Title is optional and defaults to
// a creation-date string; body must be non-empty.
type NoteCreateRequest struct {
	Title string `json:"title"`
	Body  string `json:"body" binding:"required"`
}

// NoteUpdateRequest update parameters
type NoteUpdateRequest struct {
	ID    int64  `json:"id" binding:"required,gt=0"`
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

// NoteShareRequest share parameters
type NoteShareRequest struct {
	NoteID int64 `json:"noteId" binding:"required,gt=0"`
	UserID int64 `json:"userId" binding:"required,gt=0"`
}

// NoteDTO note wire representation
type NoteDTO struct {
	ID                  int64  `json:"id"`
	Title               string `json:"title"`
	Body                string `json:"body"`
	CreatedByUserID     int64  `json:"createdByUserId"`
	LastUpdatedByUserID int64  `json:"lastUpdatedByUserId"`
}
