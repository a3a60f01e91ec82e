package domain

// SampleAuthors is the author set loaded when the store starts seeded.
func SampleAuthors() []Author {
	return []Author{
		{ID: "1", Name: "Gabriel García Márquez", Country: "Colombia", BirthYear: 1927},
		{ID: "2", Name: "Isabel Allende", Country: "Chile", BirthYear: 1942},
		{ID: "3", Name: "Jorge Luis Borges", Country: "Argentina", BirthYear: 1899},
	}
}

// SamplePublishers is the publisher set loaded when the store starts seeded.
func SamplePublishers() []Publisher {
	return []Publisher{
		{ID: "1", Name: "Editorial Sudamericana", Country: "Argentina", FoundedYear: 1939},
		{ID: "2", Name: "Planeta", Country: "España", FoundedYear: 1949},
		{ID: "3", Name: "Alfaguara", Country: "España", FoundedYear: 1964},
	}
}
