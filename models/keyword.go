package models

import "gorm.io/gorm"

// Keyword represents the knowledge_keyword table. The name is the key.
type Keyword struct {
	Name string `gorm:"primaryKey;column:name;type:varchar(100)" json:"name"`
}

// TableName overrides the table name for Keyword
func (Keyword) TableName() string {
	return "knowledge_keyword"
}

func (k Keyword) String() string {
	return k.Name
}

func OrderByKeyword(db *gorm.DB) *gorm.DB {
	return db.Order("name ASC")
}
