package library

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortCriterion selects the key used by Bookshelf.SortBooks.
type SortCriterion string

const (
	SortByTitle           SortCriterion = "title"
	SortByAuthor          SortCriterion = "author"
	SortByPublicationYear SortCriterion = "publicationYear"
	SortByRating          SortCriterion = "rating"
)

// SortCriteria lists the accepted criteria in declaration order.
var SortCriteria = []SortCriterion{
	SortByTitle,
	SortByAuthor,
	SortByPublicationYear,
	SortByRating,
}

// IsValid reports whether c is one of SortCriteria.
func (c SortCriterion) IsValid() bool {
	return slices.Contains(SortCriteria, c)
}

// collationTag is the locale used for title and author ordering.
var collationTag = language.Und

// compareFunc returns the ordering for a valid criterion.
// Rating sorts highest first; everything else ascends.
func compareFunc(criterion SortCriterion) func(a, b *Book) int {
	switch criterion {
	case SortByTitle:
		col := collate.New(collationTag)
		return func(a, b *Book) int { return col.CompareString(a.title, b.title) }
	case SortByAuthor:
		col := collate.New(collationTag)
		return func(a, b *Book) int { return col.CompareString(a.author, b.author) }
	case SortByPublicationYear:
		return func(a, b *Book) int { return cmp.Compare(a.publicationYear, b.publicationYear) }
	case SortByRating:
		return func(a, b *Book) int { return cmp.Compare(b.rating, a.rating) }
	default:
		panic("library: no ordering for sort criterion " + string(criterion))
	}
}
