package book

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testBook = Book{
	ID:             7,
	ISBN13:         "9780132350884",
	Title:          "Clean Code",
	Genre:          "Technology",
	Author:         "Robert C. Martin",
	Publisher:      "Prentice Hall",
	Language:       "English",
	PageCount:      464,
	ReleaseDate:    "2008-08-01",
	HardcoverPrice: 12.5,
	EbookPrice:     0,
	Ratings:        4.4,
	RatingsCount:   1200,
}

func TestEmpty(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	b := Empty(now)

	assert.Equal(t, "English", b.Language)
	assert.Equal(t, "2024-03-01T10:30:00Z", b.ReleaseDate)
	assert.Zero(t, b.ID)
	assert.Zero(t, b.PageCount)
}

func TestBook_Cell(t *testing.T) {
	tests := []struct {
		field string
		want  string
	}{
		{"bookID", "7"},
		{"title", "Clean Code"},
		{"pageCount", "464"},
		{"ratings", "4.4"},
		{"ratingsCount", "1200"},
		{"hardcoverPrice", "$12.50"},
		{"ebookPrice", "$0.00"},
		{"unknown", ""},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.want, testBook.Cell(tt.field))
		})
	}
}

func TestBook_ValueCoversEveryColumn(t *testing.T) {
	for _, c := range Columns.Canonical() {
		assert.NotNil(t, testBook.Value(c.Field), c.Field)
	}
	assert.Nil(t, testBook.Value("nope"))
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$0.00", FormatUSD(0))
	assert.Equal(t, "$9.99", FormatUSD(9.99))
	assert.Equal(t, "-$3.00", FormatUSD(-3))
}

func TestColumns_Defaults(t *testing.T) {
	assert.Len(t, Columns.Canonical(), 18)
	assert.Len(t, Columns.Defaults(), 10)
	assert.Equal(t, "Page Count", Columns.Header("pageCount"))
}
