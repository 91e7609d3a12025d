package book

import "bookconsole/internal/column"

// Columns is the canonical column list of the books table.
var Columns = column.NewRegistry([]column.Meta{
	{Field: "bookID", Header: "ID"},
	{Field: "isbn10", Header: "ISBN-10"},
	{Field: "isbn13", Header: "ISBN-13"},
	{Field: "title", Header: "Title"},
	{Field: "description", Header: "Description"},
	{Field: "genre", Header: "Genre"},
	{Field: "author", Header: "Author"},
	{Field: "publisher", Header: "Publisher"},
	{Field: "image", Header: "Image"},
	{Field: "language", Header: "Language"},
	{Field: "pageCount", Header: "Page Count"},
	{Field: "releaseDate", Header: "Released Date"},
	{Field: "hardcoverPrice", Header: "Hardcover Price"},
	{Field: "paperbackPrice", Header: "Paperback Price"},
	{Field: "ebookPrice", Header: "eBook Price"},
	{Field: "audiobookPrice", Header: "Audiobook Price"},
	{Field: "ratings", Header: "Ratings"},
	{Field: "ratingsCount", Header: "Ratings Count"},
},
	"bookID", "title", "genre", "author", "publisher", "releaseDate",
	"hardcoverPrice", "paperbackPrice", "ebookPrice", "audiobookPrice",
)
