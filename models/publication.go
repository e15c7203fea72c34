package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Publication represents the knowledge_publication table. A row may come from
// Scopus, Ciência Vitae or both; FromScopus and FromCiencia record which.
//
// ScopusID is a string column even though Scopus identifiers are numeric.
// (ScopusID, CienciaID) is unique when both are set; NULLs never collide.
type Publication struct {
	ID        uint    `gorm:"primaryKey;column:id" json:"id"`
	ScopusID  *string `gorm:"column:scopus_id;type:varchar(100);uniqueIndex:uniq_knowledge_publication_ids,priority:1" json:"scopus_id,omitempty"`
	CienciaID *string `gorm:"column:ciencia_id;type:varchar(100);uniqueIndex:uniq_knowledge_publication_ids,priority:2" json:"ciencia_id,omitempty"`
	DOI       *string `gorm:"column:doi;type:varchar(100)" json:"doi,omitempty"`

	// Scopus / Ciência
	Title             string           `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Date              datatypes.Date   `gorm:"column:date;not null;index" json:"date"`
	PublicationTypeID uint             `gorm:"column:publication_type_id;not null;index" json:"publication_type_id"`
	PublicationType   *PublicationType `gorm:"foreignKey:PublicationTypeID;references:ID;constraint:OnDelete:CASCADE" json:"publication_type,omitempty"`
	Keywords          []Keyword        `gorm:"many2many:knowledge_publication_keywords;joinForeignKey:PublicationID;joinReferences:KeywordID;constraint:OnDelete:CASCADE" json:"keywords"`
	FromScopus        bool             `gorm:"column:from_scopus;not null" json:"from_scopus"`
	FromCiencia       bool             `gorm:"column:from_ciencia;not null" json:"from_ciencia"`

	// Scopus
	Available bool   `gorm:"column:available;not null" json:"available"`
	CleanText string `gorm:"column:clean_text;type:text;not null;default:''" json:"clean_text"`
	Abstract  string `gorm:"column:abstract;type:text;not null;default:''" json:"abstract"`
	Areas     []Area `gorm:"many2many:knowledge_publication_areas;joinForeignKey:PublicationID;joinReferences:AreaID;constraint:OnDelete:CASCADE" json:"areas,omitempty"`
}

// TableName overrides the table name for Publication
func (Publication) TableName() string {
	return "knowledge_publication"
}

func (p Publication) String() string {
	return fmt.Sprintf("[%s] %s", formatDate(p.Date), p.Title)
}

// OrderByPublication lists the newest publications first, then by title.
func OrderByPublication(db *gorm.DB) *gorm.DB {
	return db.Order("date DESC").Order("title ASC")
}

// NewDate returns the calendar date year-month-day at midnight UTC, the
// zone the MySQL connection is opened in.
func NewDate(year int, month time.Month, day int) datatypes.Date {
	return datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

func formatDate(d datatypes.Date) string {
	return time.Time(d).UTC().Format(time.DateOnly)
}
