package service

import (
	"encoding/json"
	"errors"

	"keepnotes/cmd/internal/contract"
	"keepnotes/cmd/internal/domain/entity"
	"keepnotes/cmd/internal/utils"
	"keepnotes/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

// NoteRepository is the storage contract both backends implement. FindAll
// returns notes by descending id; FindByID returns nil, nil for a missing id.
type NoteRepository interface {
	FindAll() ([]*entity.Note, error)
	FindByID(id int) (*entity.Note, error)
	Create(note *entity.Note) error
	Update(id int, patch entity.NotePatch, timestamp int64) (*entity.Note, error)
	Delete(id int) error
}

type DefaultNoteService struct {
	NoteRepo NoteRepository
	Validate *validator.Validate

	// Strict turns on the contract limits (title and content length, hex
	// colors). Without it any well-formed payload is stored as given.
	Strict bool

	// Now returns the write time in epoch millis.
	Now func() int64
}

func NewNoteService(noteRepo NoteRepository, validate *validator.Validate) *DefaultNoteService {
	return &DefaultNoteService{
		NoteRepo: noteRepo,
		Validate: validate,
		Now:      utils.NowUTC,
	}
}

func (n *DefaultNoteService) GetAllNotes() ([]*contract.NoteResponse, apierror.ErrorResponse) {
	notes, err := n.NoteRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch notes: %v", err)
		return nil, apierror.PersistenceError
	}

	resp := make([]*contract.NoteResponse, len(notes))
	for i, note := range notes {
		resp[i] = toNoteResponse(note)
	}
	return resp, nil
}

func (n *DefaultNoteService) GetNoteByID(noteID int) (*contract.NoteResponse, apierror.ErrorResponse) {
	note, err := n.NoteRepo.FindByID(noteID)
	if err != nil {
		log.Errorf("failed to fetch note %d: %v", noteID, err)
		return nil, apierror.PersistenceError
	}

	if note == nil {
		return nil, apierror.NotFoundError
	}
	return toNoteResponse(note), nil
}

func (n *DefaultNoteService) CreateNote(req *contract.CreateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	if apierr := n.validate(req); apierr != nil {
		return nil, apierr
	}

	note := &entity.Note{
		Title:     entity.DefaultTitle,
		Content:   entity.DefaultContent,
		Color:     entity.DefaultColor,
		Timestamp: n.Now(),
	}

	// An empty title gets the placeholder too, update does not do this
	if req.Title != nil && *req.Title != "" {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Color != nil {
		note.Color = *req.Color
	}

	if err := n.NoteRepo.Create(note); err != nil {
		log.Errorf("failed to save note: %v", err)
		return nil, apierror.PersistenceError
	}

	log.Debugf("created note %d", note.ID)
	return toNoteResponse(note), nil
}

func (n *DefaultNoteService) UpdateNote(noteID int, req *contract.UpdateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	if apierr := n.validate(req); apierr != nil {
		return nil, apierr
	}

	patch := entity.NotePatch{
		Title:   req.Title,
		Content: req.Content,
		Color:   req.Color,
	}

	note, err := n.NoteRepo.Update(noteID, patch, n.Now())
	if errors.Is(err, entity.ErrNoteNotFound) {
		return nil, apierror.NotFoundError
	}

	if err != nil {
		log.Errorf("failed to update note %d: %v", noteID, err)
		return nil, apierror.PersistenceError
	}
	return toNoteResponse(note), nil
}

func (n *DefaultNoteService) DeleteNote(noteID int) apierror.ErrorResponse {
	err := n.NoteRepo.Delete(noteID)
	if errors.Is(err, entity.ErrNoteNotFound) {
		return apierror.NotFoundError
	}

	if err != nil {
		log.Errorf("failed to delete note %d: %v", noteID, err)
		return apierror.PersistenceError
	}

	log.Debugf("deleted note %d", noteID)
	return nil
}

func (n *DefaultNoteService) validate(req any) apierror.ErrorResponse {
	if !n.Strict {
		return nil
	}

	if valerr := n.Validate.Struct(req); valerr != nil {
		return apierror.FromValidationError(valerr)
	}
	return nil
}

// Snapshot renders every note as the same JSON array GetAllNotes serves.
func (n *DefaultNoteService) Snapshot() ([]byte, error) {
	notes, err := n.NoteRepo.FindAll()
	if err != nil {
		return nil, err
	}

	resp := make([]*contract.NoteResponse, len(notes))
	for i, note := range notes {
		resp[i] = toNoteResponse(note)
	}
	return json.MarshalIndent(resp, "", "  ")
}

func toNoteResponse(note *entity.Note) *contract.NoteResponse {
	return &contract.NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		Color:     note.Color,
		Timestamp: utils.FormatEpoch(note.Timestamp),
	}
}
