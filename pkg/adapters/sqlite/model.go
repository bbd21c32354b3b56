package sqlite

import (
	"encoding/json"
	"fmt"

	"github.com/TimRka/Notes-manager-PL/pkg/core"
	"gorm.io/datatypes"
)

const sequenceName = "notes"

// noteModel is the row layout of the notes table. Timestamps are kept as
// RFC 3339 text so rows decode through the same record codec as the flat file.
type noteModel struct {
	ID       int            `gorm:"column:id;primaryKey;autoIncrement:false"`
	Title    string         `gorm:"column:title;not null"`
	Content  string         `gorm:"column:content;not null;default:''"`
	Category string         `gorm:"column:category;size:16;not null"`
	Priority string         `gorm:"column:priority;size:16;not null"`
	Tags     datatypes.JSON `gorm:"column:tags"`
	Status   string         `gorm:"column:status;size:16;not null;index"`
	Created  string         `gorm:"column:created_at;not null"`
	Updated  string         `gorm:"column:updated_at;not null"`
}

func (noteModel) TableName() string { return "notes" }

// sequenceModel records the highest id ever issued.
type sequenceModel struct {
	Name   string `gorm:"column:name;primaryKey"`
	LastID int    `gorm:"column:last_id;not null"`
}

func (sequenceModel) TableName() string { return "note_sequences" }

func toModel(n core.Note) (noteModel, error) {
	rec := n.ToRecord()
	tags, err := json.Marshal(rec.Tags)
	if err != nil {
		return noteModel{}, err
	}
	return noteModel{
		ID:       *rec.ID,
		Title:    *rec.Title,
		Content:  rec.Content,
		Category: rec.Category,
		Priority: rec.Priority,
		Tags:     datatypes.JSON(tags),
		Status:   rec.Status,
		Created:  rec.CreatedAt,
		Updated:  rec.UpdatedAt,
	}, nil
}

func (m noteModel) toNote() (core.Note, error) {
	id, title := m.ID, m.Title
	rec := core.Record{
		ID:        &id,
		Title:     &title,
		Content:   m.Content,
		Category:  m.Category,
		Priority:  m.Priority,
		Status:    m.Status,
		CreatedAt: m.Created,
		UpdatedAt: m.Updated,
	}
	if len(m.Tags) > 0 {
		if err := json.Unmarshal(m.Tags, &rec.Tags); err != nil {
			return core.Note{}, core.WrapError(core.KindFormat, fmt.Sprintf("row #%d: invalid tags: %v", m.ID, err), err)
		}
	}
	return core.DecodeRecord(rec)
}
