package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"bookconsole/internal/book"
)

type bookCreator interface {
	CreateBook(ctx context.Context, b book.Book) (book.Book, error)
}

var (
	genres     = []string{"Fiction", "Science Fiction", "History", "Science", "Technology", "Romance", "Mystery", "Biography", "Philosophy", "Art"}
	languages  = []string{"English", "Spanish", "French", "German", "Italian", "Portuguese", "Chinese", "Japanese"}
	publishers = []string{"Penguin", "HarperCollins", "Oxford", "Cambridge", "MIT Press", "Springer", "Wiley", "Elsevier"}
	authors    = []string{"A. Writer", "B. Author", "C. Novelist", "D. Poet", "E. Essayist", "F. Historian"}
	words      = []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
)

type generator struct {
	rnd *rand.Rand
}

func newGenerator(seed int64) *generator {
	return &generator{rnd: rand.New(rand.NewSource(seed))}
}

func (g *generator) pick(list []string) string {
	return list[g.rnd.Intn(len(list))]
}

func (g *generator) price(lo, hi int) float64 {
	cents := lo*100 + g.rnd.Intn((hi-lo)*100)
	return float64(cents) / 100
}

// Book returns a random book that passes form validation.
func (g *generator) Book(i int) book.Book {
	year := 1950 + g.rnd.Intn(75)
	return book.Book{
		ISBN13:         fmt.Sprintf("978%010d", g.rnd.Int63n(1e10)),
		Title:          fmt.Sprintf("Book Title %d - %s", i+1, g.pick(words)),
		Description:    fmt.Sprintf("This is a book about %s.", g.pick(words)),
		Genre:          g.pick(genres),
		Author:         g.pick(authors),
		Publisher:      g.pick(publishers),
		Language:       g.pick(languages),
		PageCount:      100 + g.rnd.Intn(800),
		ReleaseDate:    time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339),
		HardcoverPrice: g.price(20, 60),
		PaperbackPrice: g.price(8, 25),
		EbookPrice:     g.price(3, 15),
		AudiobookPrice: g.price(10, 40),
		Ratings:        float64(10+g.rnd.Intn(41)) / 10,
		RatingsCount:   g.rnd.Intn(5000),
	}
}

// seed creates count books one at a time and stops at the first failure.
func seed(ctx context.Context, c bookCreator, g *generator, count int) (int, error) {
	for i := 0; i < count; i++ {
		if _, err := c.CreateBook(ctx, g.Book(i)); err != nil {
			return i, err
		}
		if (i+1)%10 == 0 {
			log.Printf("Created %d/%d books", i+1, count)
		}
	}
	return count, nil
}
