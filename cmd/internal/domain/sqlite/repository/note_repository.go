package repository

import (
	"errors"
	"fmt"

	"keepnotes/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

// DefaultNoteRepository keeps notes as rows of the notes table. Ids come from
// the table's AUTOINCREMENT key, so deleted ids are never handed out again.
type DefaultNoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *DefaultNoteRepository {
	return &DefaultNoteRepository{db: db}
}

func (d *DefaultNoteRepository) FindAll() ([]*entity.Note, error) {
	var notes []*entity.Note
	err := d.db.Order("id DESC").Find(&notes).Error
	if err != nil {
		return nil, persistErr("find notes", err)
	}
	return notes, nil
}

func (d *DefaultNoteRepository) FindByID(id int) (*entity.Note, error) {
	var note entity.Note
	err := d.db.First(&note, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, persistErr("find note", err)
	}
	return &note, nil
}

func (d *DefaultNoteRepository) Create(note *entity.Note) error {
	// Zero id lets the table assign one
	note.ID = 0
	if err := d.db.Create(note).Error; err != nil {
		return persistErr("insert note", err)
	}
	return nil
}

func (d *DefaultNoteRepository) Update(id int, patch entity.NotePatch, timestamp int64) (*entity.Note, error) {
	cols := patch.Columns()
	cols["timestamp"] = timestamp

	res := d.db.Model(&entity.Note{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return nil, persistErr("update note", res.Error)
	}

	if res.RowsAffected == 0 {
		return nil, entity.ErrNoteNotFound
	}

	note, err := d.FindByID(id)
	if err != nil {
		return nil, err
	}

	// Deleted between the update and the read back
	if note == nil {
		return nil, entity.ErrNoteNotFound
	}
	return note, nil
}

func (d *DefaultNoteRepository) Delete(id int) error {
	res := d.db.Delete(&entity.Note{}, id)
	if res.Error != nil {
		return persistErr("delete note", res.Error)
	}

	if res.RowsAffected == 0 {
		return entity.ErrNoteNotFound
	}
	return nil
}

func persistErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, entity.ErrPersistence, err)
}
