package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Area represents the knowledge_area table: a subject classification code.
type Area struct {
	Code int    `gorm:"primaryKey;autoIncrement:false;column:code" json:"code"`
	Name string `gorm:"column:name;type:varchar(100);not null" json:"name"`
}

// TableName overrides the table name for Area
func (Area) TableName() string {
	return "knowledge_area"
}

func (a Area) String() string {
	return fmt.Sprintf("%d - %s", a.Code, a.Name)
}

// OrderByArea lists areas by descending code.
func OrderByArea(db *gorm.DB) *gorm.DB {
	return db.Order("code DESC")
}
