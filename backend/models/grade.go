package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Grade keeps a denormalized roster of its students next to the authoritative
// rows in the students table. Both sides are written inside one transaction
// (see controllers.GradeController), so the embedded list stays consistent
// with students.grade.
type Grade struct {
	gorm.Model
	Name     string         `gorm:"unique;not null" json:"name"`
	Students datatypes.JSON `gorm:"type:jsonb" json:"students"`
}

// RosterEntry is one embedded student row inside a Grade.
type RosterEntry struct {
	StudentID    uint      `json:"studentId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// Roster decodes the embedded student list. A grade with no students yet has
// a NULL column, which decodes to an empty roster.
func (g *Grade) Roster() ([]RosterEntry, error) {
	if len(g.Students) == 0 {
		return []RosterEntry{}, nil
	}
	var entries []RosterEntry
	if err := json.Unmarshal(g.Students, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (g *Grade) SetRoster(entries []RosterEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	g.Students = datatypes.JSON(raw)
	return nil
}
