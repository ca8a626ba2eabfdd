package contract

const (
	MaxTitleLength   = 200
	MaxContentLength = 1000000
)

type NoteResponse struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Color     string `json:"color"`
	Timestamp string `json:"timestamp"`
}

// CreateNoteRequest and UpdateNoteRequest use pointers so that an omitted
// field can be told apart from an empty one. Values are stored verbatim; the
// validate tags only apply when the service runs in strict mode.
type CreateNoteRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=200"`
	Content *string `json:"content" validate:"omitempty,max=1000000"`
	Color   *string `json:"color" validate:"omitempty,notecolor"`
}

type UpdateNoteRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=200"`
	Content *string `json:"content" validate:"omitempty,max=1000000"`
	Color   *string `json:"color" validate:"omitempty,notecolor"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
