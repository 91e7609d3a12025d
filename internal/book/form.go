package book

import (
	"strconv"
	"strings"
)

// Form is the string-valued shape of a book as entered in the add and edit
// dialogs. Rules are checked in tag order and only the first failure of a
// field is reported.
type Form struct {
	ID             string `form:"bookID" validate:"omitempty,integer"`
	ISBN10         string `form:"isbn10"`
	ISBN13         string `form:"isbn13"`
	Title          string `form:"title" validate:"required"`
	Description    string `form:"description"`
	Genre          string `form:"genre" validate:"required"`
	Author         string `form:"author" validate:"required"`
	Publisher      string `form:"publisher" validate:"required"`
	Image          string `form:"image"`
	Language       string `form:"language"`
	PageCount      string `form:"pageCount" validate:"required,float,positive,integer,atleast=1"`
	ReleaseDate    string `form:"releaseDate" validate:"omitempty,date"`
	HardcoverPrice string `form:"hardcoverPrice" validate:"omitempty,float,nonnegative"`
	PaperbackPrice string `form:"paperbackPrice" validate:"omitempty,float,nonnegative"`
	EbookPrice     string `form:"ebookPrice" validate:"omitempty,float,nonnegative"`
	AudiobookPrice string `form:"audiobookPrice" validate:"omitempty,float,nonnegative"`
	Ratings        string `form:"ratings" validate:"omitempty,float"`
	RatingsCount   string `form:"ratingsCount" validate:"omitempty,integer,nonnegative"`
}

// FormFields lists the form field names in display order.
var FormFields = []string{
	"bookID", "title", "isbn10", "isbn13", "author", "publisher", "description",
	"genre", "image", "language", "releaseDate", "pageCount", "hardcoverPrice",
	"paperbackPrice", "ebookPrice", "audiobookPrice", "ratings", "ratingsCount",
}

func (f *Form) field(name string) *string {
	switch name {
	case "bookID":
		return &f.ID
	case "isbn10":
		return &f.ISBN10
	case "isbn13":
		return &f.ISBN13
	case "title":
		return &f.Title
	case "description":
		return &f.Description
	case "genre":
		return &f.Genre
	case "author":
		return &f.Author
	case "publisher":
		return &f.Publisher
	case "image":
		return &f.Image
	case "language":
		return &f.Language
	case "pageCount":
		return &f.PageCount
	case "releaseDate":
		return &f.ReleaseDate
	case "hardcoverPrice":
		return &f.HardcoverPrice
	case "paperbackPrice":
		return &f.PaperbackPrice
	case "ebookPrice":
		return &f.EbookPrice
	case "audiobookPrice":
		return &f.AudiobookPrice
	case "ratings":
		return &f.Ratings
	case "ratingsCount":
		return &f.RatingsCount
	}
	return nil
}

// FormFromBook renders b into form values.
func FormFromBook(b Book) Form {
	return Form{
		ID:             strconv.FormatInt(b.ID, 10),
		ISBN10:         b.ISBN10,
		ISBN13:         b.ISBN13,
		Title:          b.Title,
		Description:    b.Description,
		Genre:          b.Genre,
		Author:         b.Author,
		Publisher:      b.Publisher,
		Image:          b.Image,
		Language:       b.Language,
		PageCount:      strconv.Itoa(b.PageCount),
		ReleaseDate:    b.ReleaseDate,
		HardcoverPrice: formatFloat(b.HardcoverPrice),
		PaperbackPrice: formatFloat(b.PaperbackPrice),
		EbookPrice:     formatFloat(b.EbookPrice),
		AudiobookPrice: formatFloat(b.AudiobookPrice),
		Ratings:        formatFloat(b.Ratings),
		RatingsCount:   strconv.Itoa(b.RatingsCount),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Book converts a validated form. Empty optional numbers become zero.
func (f Form) Book() Book {
	return Book{
		ID:             parseInt64(f.ID),
		ISBN10:         f.ISBN10,
		ISBN13:         f.ISBN13,
		Title:          f.Title,
		Description:    f.Description,
		Genre:          f.Genre,
		Author:         f.Author,
		Publisher:      f.Publisher,
		Image:          f.Image,
		Language:       f.Language,
		PageCount:      int(parseInt64(f.PageCount)),
		ReleaseDate:    f.ReleaseDate,
		HardcoverPrice: parseFloat(f.HardcoverPrice),
		PaperbackPrice: parseFloat(f.PaperbackPrice),
		EbookPrice:     parseFloat(f.EbookPrice),
		AudiobookPrice: parseFloat(f.AudiobookPrice),
		Ratings:        parseFloat(f.Ratings),
		RatingsCount:   int(parseInt64(f.RatingsCount)),
	}
}

func parseInt64(s string) int64 {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	return int64(parseFloat(s))
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

// FormState tracks one dialog's form: its values, the fields the operator
// has touched and the errors currently shown for them.
type FormState struct {
	form    Form
	touched map[string]bool
	errors  FieldErrors
}

func NewFormState(seed Book) *FormState {
	s := &FormState{}
	s.Reset(seed)
	return s
}

// Reset reseeds the form and forgets touched fields and errors.
func (s *FormState) Reset(seed Book) {
	s.form = FormFromBook(seed)
	s.touched = map[string]bool{}
	s.errors = FieldErrors{}
}

// Set updates one field and revalidates the touched fields. It reports
// false for unknown fields.
func (s *FormState) Set(field, value string) bool {
	p := s.form.field(field)
	if p == nil {
		return false
	}
	*p = strings.TrimSpace(value)
	s.touched[field] = true
	s.revalidate()
	return true
}

// SetAll applies every known field of values, as a full form post does.
func (s *FormState) SetAll(values map[string]string) {
	for field, value := range values {
		if p := s.form.field(field); p != nil {
			*p = strings.TrimSpace(value)
			s.touched[field] = true
		}
	}
	s.revalidate()
}

func (s *FormState) revalidate() {
	all := validateForm(s.form)
	s.errors = FieldErrors{}
	for field, msg := range all {
		if s.touched[field] {
			s.errors[field] = msg
		}
	}
}

// Submit validates the whole form. On failure every field counts as touched
// so all violations become visible and no book is returned.
func (s *FormState) Submit() (Book, bool) {
	for _, f := range FormFields {
		s.touched[f] = true
	}
	s.revalidate()
	if len(s.errors) > 0 {
		return Book{}, false
	}
	return s.form.Book(), true
}

// Errors returns a copy of the visible field errors.
func (s *FormState) Errors() FieldErrors {
	out := make(FieldErrors, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// Values returns a copy of the current field values keyed by field name.
func (s *FormState) Values() map[string]string {
	out := make(map[string]string, len(FormFields))
	for _, f := range FormFields {
		out[f] = *s.form.field(f)
	}
	return out
}

func (s *FormState) Value(field string) string {
	if p := s.form.field(field); p != nil {
		return *p
	}
	return ""
}
