package models

import "gorm.io/gorm"

// PublicationType represents the knowledge_publicationtype table, a controlled
// vocabulary such as "Article" or "Conference Paper".
type PublicationType struct {
	ID   uint   `gorm:"primaryKey;column:id" json:"id"`
	Name string `gorm:"column:name;type:varchar(50);not null;uniqueIndex:uniq_knowledge_publicationtype_name" json:"name"`
}

// TableName overrides the table name for PublicationType
func (PublicationType) TableName() string {
	return "knowledge_publicationtype"
}

func (t PublicationType) String() string {
	return t.Name
}

func OrderByPublicationType(db *gorm.DB) *gorm.DB {
	return db.Order("name ASC")
}
