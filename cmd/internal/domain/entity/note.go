package entity

// Values a new note gets for every field the create request leaves out.
const (
	DefaultTitle   = "New note"
	DefaultContent = ""
	DefaultColor   = "#ffffff"
)

type Note struct {
	ID        int    `gorm:"primaryKey;autoIncrement"`
	Title     string `gorm:"not null"`
	Content   string `gorm:"not null"`
	Color     string `gorm:"not null"`
	Timestamp int64  `gorm:"not null"` // Epoch millis (UTC) of the last write
}

// NotePatch carries the fields of a partial update. A nil field keeps
// whatever is currently stored.
type NotePatch struct {
	Title   *string
	Content *string
	Color   *string
}

// Apply copies every provided field of the patch onto note.
func (p NotePatch) Apply(note *Note) {
	if p.Title != nil {
		note.Title = *p.Title
	}
	if p.Content != nil {
		note.Content = *p.Content
	}
	if p.Color != nil {
		note.Color = *p.Color
	}
}

// Columns returns the patch as a column -> value map, only with the fields
// that were provided.
func (p NotePatch) Columns() map[string]any {
	cols := make(map[string]any, 3)
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Content != nil {
		cols["content"] = *p.Content
	}
	if p.Color != nil {
		cols["color"] = *p.Color
	}
	return cols
}
