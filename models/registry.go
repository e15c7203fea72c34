package models

// All returns every knowledge model in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&Area{},
		&Affiliation{},
		&Keyword{},
		&PublicationType{},
		&Project{},
		&Publication{},
		&Author{},
	}
}

// JoinTables lists the many-to-many tables created for the models above.
func JoinTables() []string {
	return []string{
		"knowledge_author_domains",
		"knowledge_author_publications",
		"knowledge_author_current_affiliations",
		"knowledge_author_previous_affiliations",
		"knowledge_author_projects",
		"knowledge_publication_keywords",
		"knowledge_publication_areas",
		"knowledge_project_areas",
	}
}
