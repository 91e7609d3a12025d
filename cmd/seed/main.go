package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"bookconsole/internal/gateway"

	"github.com/joho/godotenv"
)

func main() {
	count := flag.Int("count", 25, "Number of books to create")
	flag.Parse()

	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	baseURL := os.Getenv("BOOKSHOP_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	timeout := 10 * time.Second
	if v := os.Getenv("GATEWAY_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			timeout = d
		}
	}

	client := gateway.NewClient(baseURL, "bookconsole-seed/1.0", timeout)
	ctx := context.Background()

	log.Printf("Generating %d books...", *count)
	created, err := seed(ctx, client, newGenerator(time.Now().UnixNano()), *count)
	if err != nil {
		log.Fatalf("Seeding stopped after %d books: %v", created, err)
	}
	log.Printf("Successfully created %d books!", created)

	books, err := client.ListBooks(ctx)
	if err != nil {
		log.Printf("Failed to verify: %v", err)
		return
	}
	log.Printf("Total books in catalog: %d", len(books))
}
