// Package filestore keeps the whole note collection as one JSON document on
// disk. Every operation loads the document, changes it in memory and writes
// it back in full.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"keepnotes/cmd/internal/domain/entity"
	"keepnotes/cmd/internal/utils"

	"github.com/labstack/gommon/log"
)

const DefaultPath = "notes.json"

type Config struct {
	Path string

	// LenientReads turns a missing or unparsable document into an empty
	// collection instead of an error.
	LenientReads bool

	// LenientWrites logs a failed save and reports success to the caller.
	LenientWrites bool
}

// DefaultConfig is the fail-open configuration: unreadable documents read as
// empty and failed writes are only logged.
func DefaultConfig(path string) Config {
	return Config{
		Path:          path,
		LenientReads:  true,
		LenientWrites: true,
	}
}

// record is the on-disk shape of a note.
type record struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	Color     string `json:"color"`
}

// NoteRepository owns the document at Config.Path. Load-mutate-save cycles
// are serialized within the process; another process writing the same path
// still wins by last save.
type NoteRepository struct {
	cfg Config
	mu  sync.Mutex
}

func NewNoteRepository(cfg Config) *NoteRepository {
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	return &NoteRepository{cfg: cfg}
}

func (r *NoteRepository) Path() string {
	return r.cfg.Path
}

func (r *NoteRepository) FindAll() ([]*entity.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	notes, err := r.load()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].ID > notes[j].ID
	})
	return notes, nil
}

func (r *NoteRepository) FindByID(id int) (*entity.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	notes, err := r.load()
	if err != nil {
		return nil, err
	}

	if i := indexOf(notes, id); i >= 0 {
		return notes[i], nil
	}
	return nil, nil
}

// Create gives note the id 1 + the highest id in the document. The id of a
// deleted note that was the highest one is therefore handed out again.
func (r *NoteRepository) Create(note *entity.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	notes, err := r.load()
	if err != nil {
		return err
	}

	maxID := 0
	for _, n := range notes {
		maxID = max(maxID, n.ID)
	}
	note.ID = maxID + 1

	stored := *note
	notes = append(notes, &stored)
	return r.save(notes)
}

func (r *NoteRepository) Update(id int, patch entity.NotePatch, timestamp int64) (*entity.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	notes, err := r.load()
	if err != nil {
		return nil, err
	}

	i := indexOf(notes, id)
	if i < 0 {
		return nil, entity.ErrNoteNotFound
	}

	note := notes[i]
	patch.Apply(note)
	note.Timestamp = timestamp

	if err := r.save(notes); err != nil {
		return nil, err
	}

	updated := *note
	return &updated, nil
}

func (r *NoteRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	notes, err := r.load()
	if err != nil {
		return err
	}

	i := indexOf(notes, id)
	if i < 0 {
		return entity.ErrNoteNotFound
	}

	notes = append(notes[:i], notes[i+1:]...)
	return r.save(notes)
}

func (r *NoteRepository) load() ([]*entity.Note, error) {
	data, err := os.ReadFile(r.cfg.Path)
	if errors.Is(err, os.ErrNotExist) {
		return []*entity.Note{}, nil
	}

	if err != nil {
		return r.readFailure(fmt.Errorf("read %s: %w: %w", r.cfg.Path, entity.ErrPersistence, err))
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return r.readFailure(fmt.Errorf("parse %s: %w: %w", r.cfg.Path, entity.ErrPersistence, err))
	}

	notes := make([]*entity.Note, len(records))
	for i, rec := range records {
		notes[i] = fromRecord(rec)
	}
	return notes, nil
}

func (r *NoteRepository) readFailure(err error) ([]*entity.Note, error) {
	if !r.cfg.LenientReads {
		return nil, err
	}

	log.Warnf("notes document unreadable, serving empty collection: %v", err)
	return []*entity.Note{}, nil
}

func (r *NoteRepository) save(notes []*entity.Note) error {
	records := make([]record, len(notes))
	for i, n := range notes {
		records[i] = toRecord(n)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err == nil {
		err = writeFileAtomic(r.cfg.Path, data, 0o644)
	}

	if err == nil {
		return nil
	}

	err = fmt.Errorf("write %s: %w: %w", r.cfg.Path, entity.ErrPersistence, err)
	if !r.cfg.LenientWrites {
		return err
	}

	log.Errorf("failed to save notes document: %v", err)
	return nil
}

func indexOf(notes []*entity.Note, id int) int {
	for i, n := range notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func toRecord(n *entity.Note) record {
	return record{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Timestamp: utils.FormatEpoch(n.Timestamp),
		Color:     n.Color,
	}
}

func fromRecord(rec record) *entity.Note {
	// A timestamp we cannot read should not cost the whole document
	ts, err := utils.ParseEpoch(rec.Timestamp)
	if err != nil {
		log.Debugf("note %d has unreadable timestamp %q", rec.ID, rec.Timestamp)
	}

	return &entity.Note{
		ID:        rec.ID,
		Title:     rec.Title,
		Content:   rec.Content,
		Color:     rec.Color,
		Timestamp: ts,
	}
}
