package book

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validValues() map[string]string {
	return map[string]string{
		"title":     "Dune",
		"author":    "Frank Herbert",
		"publisher": "Chilton",
		"genre":     "Science Fiction",
		"pageCount": "412",
	}
}

func TestFormState_SubmitValid(t *testing.T) {
	s := NewFormState(Empty(time.Now()))
	s.SetAll(validValues())

	b, ok := s.Submit()
	require.True(t, ok)
	assert.Empty(t, s.Errors())
	assert.Equal(t, "Dune", b.Title)
	assert.Equal(t, 412, b.PageCount)
	assert.Equal(t, "English", b.Language)
}

func TestFormState_RequiredFieldsBlockSubmit(t *testing.T) {
	for _, field := range []string{"title", "author", "publisher", "genre", "pageCount"} {
		t.Run(field, func(t *testing.T) {
			s := NewFormState(Empty(time.Now()))
			values := validValues()
			values[field] = ""
			s.SetAll(values)

			_, ok := s.Submit()
			assert.False(t, ok)
			assert.NotEmpty(t, s.Errors()[field])
			assert.Len(t, s.Errors(), 1)
		})
	}
}

func TestFormState_WhitespaceIsEmpty(t *testing.T) {
	s := NewFormState(Empty(time.Now()))
	values := validValues()
	values["title"] = "   "
	s.SetAll(values)

	_, ok := s.Submit()
	assert.False(t, ok)
	assert.Equal(t, "Title is required", s.Errors()["title"])
}

func TestFormState_PageCount(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
		msg   string
	}{
		{"0", false, "Page Count must be positive"},
		{"-1", false, "Page Count must be positive"},
		{"3.5", false, "Page Count must be an integer"},
		{"abc", false, "Page Count must be a number"},
		{"", false, "Page Count is required"},
		{"1", true, ""},
		{"250", true, ""},
		{"3.0", true, ""},
		{"1e2", true, ""},
		{"2.5e0", false, "Page Count must be an integer"},
		{"NaN", false, "Page Count must be a number"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			s := NewFormState(Empty(time.Now()))
			values := validValues()
			values["pageCount"] = tt.value
			s.SetAll(values)

			b, ok := s.Submit()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.msg, s.Errors()["pageCount"])
			if tt.ok {
				assert.Positive(t, b.PageCount)
			}
		})
	}
}

func TestFormState_OptionalNumbers(t *testing.T) {
	tests := []struct {
		field string
		value string
		msg   string
	}{
		{"hardcoverPrice", "-0.01", "Hardcover Price must not be negative"},
		{"ebookPrice", "free", "eBook Price must be a number"},
		{"paperbackPrice", "", ""},
		{"audiobookPrice", "19.99", ""},
		{"ratingsCount", "2.5", "Ratings Count must be an integer"},
		{"ratingsCount", "-4", "Ratings Count must not be negative"},
		{"ratings", "4.25", ""},
		{"ratingsCount", "1.2e3", ""},
		{"ebookPrice", "Inf", "eBook Price must be a number"},
		{"releaseDate", "yesterday", "Released Date must be a valid date"},
		{"releaseDate", "1965-08-01", ""},
	}
	for _, tt := range tests {
		t.Run(tt.field+"="+tt.value, func(t *testing.T) {
			s := NewFormState(Empty(time.Now()))
			values := validValues()
			values[tt.field] = tt.value
			s.SetAll(values)

			_, ok := s.Submit()
			assert.Equal(t, tt.msg == "", ok)
			assert.Equal(t, tt.msg, s.Errors()[tt.field])
		})
	}
}

func TestFormState_WholeNumberSpellings(t *testing.T) {
	s := NewFormState(Empty(time.Now()))
	values := validValues()
	values["pageCount"] = "1e2"
	values["ratingsCount"] = "3.0"
	s.SetAll(values)

	b, ok := s.Submit()
	require.True(t, ok)
	assert.Equal(t, 100, b.PageCount)
	assert.Equal(t, 3, b.RatingsCount)
}

func TestFormState_OnlyTouchedFieldsShowErrors(t *testing.T) {
	s := NewFormState(Empty(time.Now()))

	require.True(t, s.Set("title", ""))
	assert.Equal(t, FieldErrors{"title": "Title is required"}, s.Errors())

	require.True(t, s.Set("title", "Emma"))
	assert.Empty(t, s.Errors())

	assert.False(t, s.Set("nonexistent", "x"))

	_, ok := s.Submit()
	assert.False(t, ok)
	errs := s.Errors()
	assert.Contains(t, errs, "author")
	assert.Contains(t, errs, "pageCount")
	assert.NotContains(t, errs, "title")
}

func TestFormState_ResetForgetsState(t *testing.T) {
	s := NewFormState(Empty(time.Now()))
	_, ok := s.Submit()
	require.False(t, ok)
	require.NotEmpty(t, s.Errors())

	s.Reset(testBook)
	assert.Empty(t, s.Errors())
	assert.Equal(t, "Clean Code", s.Value("title"))
	assert.Equal(t, "7", s.Value("bookID"))

	b, ok := s.Submit()
	require.True(t, ok)
	assert.Equal(t, testBook, b)
}

func TestFormState_Values(t *testing.T) {
	s := NewFormState(testBook)
	values := s.Values()

	assert.Len(t, values, len(FormFields))
	assert.Equal(t, "12.5", values["hardcoverPrice"])
	assert.Equal(t, "464", values["pageCount"])
}
