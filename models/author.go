package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"
)

// ErrListDecode is returned when a JSON list column holds invalid text.
var ErrListDecode = errors.New("invalid JSON list")

const emptyJSONList = "[]"

// Author represents the knowledge_author table: one researcher profile merged
// from Scopus and Ciência Vitae.
//
// The unique index over (scopus_id, ciencia_id, orcid_id) does not stop two
// rows describing the same person when scopus_id is NULL, because NULL never
// equals NULL. Callers that create authors must check the individual
// identifiers themselves.
type Author struct {
	ID        uint   `gorm:"primaryKey;column:id" json:"id"`
	ScopusID  *int64 `gorm:"column:scopus_id;uniqueIndex:uniq_knowledge_author_ids,priority:1" json:"scopus_id,omitempty"`
	CienciaID string `gorm:"column:ciencia_id;type:varchar(100);not null;default:'';uniqueIndex:uniq_knowledge_author_ids,priority:2" json:"ciencia_id"`
	OrcidID   string `gorm:"column:orcid_id;type:varchar(100);not null;default:'';uniqueIndex:uniq_knowledge_author_ids,priority:3" json:"orcid_id"`

	// Scopus / Ciência
	Name         string        `gorm:"column:name;type:varchar(100);not null;default:'';index" json:"name"`
	Domains      []Area        `gorm:"many2many:knowledge_author_domains;joinForeignKey:AuthorID;joinReferences:AreaID;constraint:OnDelete:CASCADE" json:"domains,omitempty"`
	Publications []Publication `gorm:"many2many:knowledge_author_publications;joinForeignKey:AuthorID;joinReferences:PublicationID;constraint:OnDelete:CASCADE" json:"publications,omitempty"`

	// Scopus
	NameList             string        `gorm:"column:name_list;type:text;not null;default:'[]'" json:"name_list"`
	HIndex               *int          `gorm:"column:h_index" json:"h_index,omitempty"`
	CitationCount        int           `gorm:"column:citation_count;not null;default:0" json:"citation_count"`
	CitedByCount         int           `gorm:"column:cited_by_count;not null;default:0" json:"cited_by_count"`
	CurrentAffiliations  []Affiliation `gorm:"many2many:knowledge_author_current_affiliations;joinForeignKey:AuthorID;joinReferences:AffiliationID;constraint:OnDelete:CASCADE" json:"current_affiliations,omitempty"`
	PreviousAffiliations []Affiliation `gorm:"many2many:knowledge_author_previous_affiliations;joinForeignKey:AuthorID;joinReferences:AffiliationID;constraint:OnDelete:CASCADE" json:"previous_affiliations,omitempty"`

	// Ciência
	Bio          string    `gorm:"column:bio;type:text;not null;default:''" json:"bio"`
	Degrees      string    `gorm:"column:degrees;type:text;not null;default:'[]'" json:"degrees"`
	Distinctions string    `gorm:"column:distinctions;type:text;not null;default:'[]'" json:"distinctions"`
	Projects     []Project `gorm:"many2many:knowledge_author_projects;joinForeignKey:AuthorID;joinReferences:ProjectID;constraint:OnDelete:CASCADE" json:"projects,omitempty"`

	// SyncedCiencia is set once the author has been reconciled against
	// Ciência Vitae at least once.
	SyncedCiencia bool `gorm:"column:synced_ciencia;not null;default:false" json:"synced_ciencia"`
}

// TableName overrides the table name for Author
func (Author) TableName() string {
	return "knowledge_author"
}

// BeforeCreate fills unset JSON list columns with an empty list.
func (a *Author) BeforeCreate(tx *gorm.DB) error {
	a.applyListDefaults()
	return nil
}

func (a *Author) applyListDefaults() {
	if a.NameList == "" {
		a.NameList = emptyJSONList
	}
	if a.Degrees == "" {
		a.Degrees = emptyJSONList
	}
	if a.Distinctions == "" {
		a.Distinctions = emptyJSONList
	}
}

func (a Author) String() string {
	if a.Name != "" {
		return a.Name
	}
	return strconv.FormatUint(uint64(a.ID), 10)
}

// LoadNameList decodes the name variants reported by Scopus.
func (a *Author) LoadNameList() ([]any, error) {
	return decodeList("name_list", a.NameList)
}

// LoadDegrees decodes the academic degrees reported by Ciência Vitae.
func (a *Author) LoadDegrees() ([]any, error) {
	return decodeList("degrees", a.Degrees)
}

// LoadDistinctions decodes the distinctions reported by Ciência Vitae.
func (a *Author) LoadDistinctions() ([]any, error) {
	return decodeList("distinctions", a.Distinctions)
}

// SetNameList stores values as the JSON text of name_list.
func (a *Author) SetNameList(values any) error {
	return encodeList("name_list", values, &a.NameList)
}

func (a *Author) SetDegrees(values any) error {
	return encodeList("degrees", values, &a.Degrees)
}

func (a *Author) SetDistinctions(values any) error {
	return encodeList("distinctions", values, &a.Distinctions)
}

// PublicationsAbstract counts the loaded publications that have an abstract.
func (a *Author) PublicationsAbstract() int {
	cnt := 0
	for _, publication := range a.Publications {
		if publication.Abstract != "" {
			cnt++
		}
	}
	return cnt
}

// PublicationsFulltext counts the loaded publications whose full text is available.
func (a *Author) PublicationsFulltext() int {
	cnt := 0
	for _, publication := range a.Publications {
		if publication.Available {
			cnt++
		}
	}
	return cnt
}

// OrderByAuthor lists authors alphabetically.
func OrderByAuthor(db *gorm.DB) *gorm.DB {
	return db.Order("name ASC")
}

func decodeList(field, raw string) ([]any, error) {
	var values []any
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("decode %s: %w: %w", field, ErrListDecode, err)
	}
	if values == nil {
		values = []any{}
	}
	return values, nil
}

func encodeList(field string, values any, dst *string) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode %s: %w", field, err)
	}
	if _, err := decodeList(field, string(raw)); err != nil {
		return err
	}
	*dst = string(raw)
	return nil
}
