package domain

// Entity is anything the catalog stores under a writer-assigned id.
type Entity interface {
	EntityID() string
}

// Patch merges a partial set of fields into an existing entity. The id is never changed.
type Patch[T Entity] interface {
	EntityID() string
	Apply(current T) T
}

// Author is a catalog author.
type Author struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Country   string `json:"country"`
	BirthYear int    `json:"birthYear"`
}

func (a Author) EntityID() string { return a.ID }

// Publisher is a catalog publishing house.
type Publisher struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	FoundedYear int    `json:"foundedYear"`
}

func (p Publisher) EntityID() string { return p.ID }

// AuthorPatch carries the fields of an author update. Nil fields are left unchanged.
type AuthorPatch struct {
	ID        string  `json:"id"`
	Name      *string `json:"name,omitempty"`
	Country   *string `json:"country,omitempty"`
	BirthYear *int    `json:"birthYear,omitempty"`
}

func (p AuthorPatch) EntityID() string { return p.ID }

func (p AuthorPatch) Apply(current Author) Author {
	if p.Name != nil {
		current.Name = *p.Name
	}
	if p.Country != nil {
		current.Country = *p.Country
	}
	if p.BirthYear != nil {
		current.BirthYear = *p.BirthYear
	}
	return current
}

// PublisherPatch carries the fields of a publisher update. Nil fields are left unchanged.
type PublisherPatch struct {
	ID          string  `json:"id"`
	Name        *string `json:"name,omitempty"`
	Country     *string `json:"country,omitempty"`
	FoundedYear *int    `json:"foundedYear,omitempty"`
}

func (p PublisherPatch) EntityID() string { return p.ID }

func (p PublisherPatch) Apply(current Publisher) Publisher {
	if p.Name != nil {
		current.Name = *p.Name
	}
	if p.Country != nil {
		current.Country = *p.Country
	}
	if p.FoundedYear != nil {
		current.FoundedYear = *p.FoundedYear
	}
	return current
}

var (
	_ Patch[Author]    = AuthorPatch{}
	_ Patch[Publisher] = PublisherPatch{}
)
