package models

import "gorm.io/gorm"

// Affiliation represents the knowledge_affiliation table. Institutions form a
// tree through ParentID; removing a parent leaves its children orphaned.
type Affiliation struct {
	ScopusID int64        `gorm:"primaryKey;autoIncrement:false;column:scopus_id" json:"scopus_id"`
	ParentID *int64       `gorm:"column:parent_id;index" json:"parent_id,omitempty"`
	Name     string       `gorm:"column:name;type:varchar(200);not null" json:"name"`
	Parent   *Affiliation `gorm:"foreignKey:ParentID;references:ScopusID;constraint:OnDelete:SET NULL" json:"parent,omitempty"`
}

// TableName overrides the table name for Affiliation
func (Affiliation) TableName() string {
	return "knowledge_affiliation"
}

func (a Affiliation) String() string {
	return a.Name
}

// OrderByAffiliation lists affiliations alphabetically.
func OrderByAffiliation(db *gorm.DB) *gorm.DB {
	return db.Order("name ASC")
}
