package models

import "gorm.io/gorm"

// Subject groups learning units under a grade label (grade -> subject -> unit).
type Subject struct {
	gorm.Model
	Grade string `gorm:"index;not null" json:"grade"`
	Name  string `gorm:"not null" json:"name"`
	Units []Unit `json:"units"`
}

type Unit struct {
	gorm.Model
	SubjectID     uint   `gorm:"index" json:"subjectId"`
	Name          string `gorm:"not null" json:"name"`
	Content       string `json:"content"`
	SequenceOrder int    `json:"order"`
}
