package models

import (
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project represents the knowledge_project table
type Project struct {
	Name  string         `gorm:"primaryKey;column:name;type:varchar(200)" json:"name"`
	Desc  string         `gorm:"column:desc;type:text;not null" json:"desc"`
	Date  datatypes.Date `gorm:"column:date;not null" json:"date"`
	Areas []Area         `gorm:"many2many:knowledge_project_areas;joinForeignKey:ProjectID;joinReferences:AreaID;constraint:OnDelete:CASCADE" json:"areas,omitempty"`
}

// TableName overrides the table name for Project
func (Project) TableName() string {
	return "knowledge_project"
}

func (p Project) String() string {
	return fmt.Sprintf("[%s] %s", formatDate(p.Date), p.Name)
}

// OrderByProject lists the most recent projects first, ties broken by name.
func OrderByProject(db *gorm.DB) *gorm.DB {
	return db.Order("date DESC").Order("name ASC")
}
