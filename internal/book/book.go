package book

import (
	"strconv"
	"time"
)

// Book is the catalog entity exchanged with the bookshop API.
type Book struct {
	ID             int64   `json:"bookID"`
	ISBN10         string  `json:"isbn10"`
	ISBN13         string  `json:"isbn13"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Genre          string  `json:"genre"`
	Author         string  `json:"author"`
	Publisher      string  `json:"publisher"`
	Image          string  `json:"image"`
	Language       string  `json:"language"`
	PageCount      int     `json:"pageCount"`
	ReleaseDate    string  `json:"releaseDate"`
	HardcoverPrice float64 `json:"hardcoverPrice"`
	PaperbackPrice float64 `json:"paperbackPrice"`
	EbookPrice     float64 `json:"ebookPrice"`
	AudiobookPrice float64 `json:"audiobookPrice"`
	Ratings        float64 `json:"ratings"`
	RatingsCount   int     `json:"ratingsCount"`
}

// Empty returns the book the add form starts from.
func Empty(now time.Time) Book {
	return Book{
		Language:    "English",
		ReleaseDate: now.UTC().Format(time.RFC3339),
	}
}

// Value returns the raw value of a column field, or nil for unknown fields.
func (b Book) Value(field string) any {
	switch field {
	case "bookID":
		return b.ID
	case "isbn10":
		return b.ISBN10
	case "isbn13":
		return b.ISBN13
	case "title":
		return b.Title
	case "description":
		return b.Description
	case "genre":
		return b.Genre
	case "author":
		return b.Author
	case "publisher":
		return b.Publisher
	case "image":
		return b.Image
	case "language":
		return b.Language
	case "pageCount":
		return b.PageCount
	case "releaseDate":
		return b.ReleaseDate
	case "hardcoverPrice":
		return b.HardcoverPrice
	case "paperbackPrice":
		return b.PaperbackPrice
	case "ebookPrice":
		return b.EbookPrice
	case "audiobookPrice":
		return b.AudiobookPrice
	case "ratings":
		return b.Ratings
	case "ratingsCount":
		return b.RatingsCount
	}
	return nil
}

// Cell returns the display text of a column field. Prices are rendered as
// USD amounts.
func (b Book) Cell(field string) string {
	if IsPrice(field) {
		v, _ := b.Value(field).(float64)
		return FormatUSD(v)
	}
	switch v := b.Value(field).(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// IsPrice reports whether field is one of the four price columns.
func IsPrice(field string) bool {
	switch field {
	case "hardcoverPrice", "paperbackPrice", "ebookPrice", "audiobookPrice":
		return true
	}
	return false
}
