package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorPatchOnlyTouchesProvidedFields(t *testing.T) {
	current := Author{ID: "1", Name: "A", Country: "C", BirthYear: 1900}
	country := "D"

	got := AuthorPatch{ID: "1", Country: &country}.Apply(current)

	assert.Equal(t, Author{ID: "1", Name: "A", Country: "D", BirthYear: 1900}, got)
}

func TestAuthorPatchKeepsID(t *testing.T) {
	current := Author{ID: "1", Name: "A"}
	name := "B"

	got := AuthorPatch{ID: "other", Name: &name}.Apply(current)

	assert.Equal(t, "1", got.ID)
	assert.Equal(t, "B", got.Name)
}

func TestPublisherPatchAllFields(t *testing.T) {
	current := Publisher{ID: "7", Name: "P", Country: "X", FoundedYear: 1950}
	name, country, year := "Q", "Y", 1960

	got := PublisherPatch{ID: "7", Name: &name, Country: &country, FoundedYear: &year}.Apply(current)

	assert.Equal(t, Publisher{ID: "7", Name: "Q", Country: "Y", FoundedYear: 1960}, got)
}

func TestStatusApplied(t *testing.T) {
	cases := map[Status]bool{
		StatusCreated:      true,
		StatusReplaced:     true,
		StatusUpdated:      true,
		StatusDeleted:      true,
		StatusNotFound:     false,
		StatusUnrecognized: false,
		StatusRejected:     false,
	}
	for status, expected := range cases {
		assert.Equal(t, expected, status.Applied(), "status %s", status)
	}
}
