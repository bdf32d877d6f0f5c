// seed inserts a demo user and a small movie catalog into the local dev
// database. Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"

	"github.com/askarbek/moviehub/internal/infrastructure/postgres"
	"github.com/askarbek/moviehub/internal/password"
)

const (
	seedUsername = "moviefan"
	seedPassword = "Password1!"
	seedEmail    = "moviefan@test.local"
)

type seedMovie struct {
	title       string
	year        int
	genre       string
	genreDesc   string
	director    string
	directorBio string
	birthYear   int
	deathYear   *int
	description string
	featured    bool
}

func intPtr(v int) *int { return &v }

var movies = []seedMovie{
	{"Jab We Met", 2007, "Romance", "Love stories built around the meeting of two people.",
		"Imtiaz Ali", "Indian director known for journeys of self-discovery.", 1971, nil,
		"A heartbroken businessman meets a lively Punjabi girl on an overnight train.", true},
	{"Barfi!", 2012, "Romantic Comedy", "Romance played for warmth and laughs.",
		"Anurag Basu", "Indian director and screenwriter.", 1970, nil,
		"A mute man charms two very different women in 1970s Darjeeling.", false},
	{"Drishyam", 2015, "Thriller", "Tension-driven stories of crime and pursuit.",
		"Nishikant Kamat", "Indian director of Marathi and Hindi cinema.", 1970, intPtr(2020),
		"A cable operator goes to extremes to protect his family from a murder probe.", false},
	{"Kabir Singh", 2019, "Romance", "Love stories built around the meeting of two people.",
		"Sandeep Reddy Vanga", "Indian director who debuted with Arjun Reddy.", 1981, nil,
		"A brilliant but self-destructive surgeon spirals after losing his love.", false},
	{"Queen", 2013, "Comedy-Drama", "Humour woven through serious, grounded stories.",
		"Vikas Bahl", "Indian director and producer.", 1971, nil,
		"A jilted bride takes her honeymoon to Europe alone and finds herself.", true},
	{"Taare Zameen Par", 2007, "Drama", "Character-driven stories of everyday struggle.",
		"Aamir Khan", "Indian actor turned director.", 1965, nil,
		"An art teacher discovers why a dreamy eight-year-old keeps failing school.", false},
	{"Gully Boy", 2019, "Musical", "Stories told through and about music.",
		"Zoya Akhtar", "Indian director of ensemble dramas.", 1972, nil,
		"A street rapper from the Mumbai slums fights his way to the stage.", false},
	{"Raazi", 2018, "War", "Conflict seen through the people caught inside it.",
		"Meghna Gulzar", "Indian director known for fact-based dramas.", 1973, nil,
		"A young Kashmiri woman marries across the border to spy for India in 1971.", false},
	{"Chhichhore", 2019, "Comedy-Drama", "Humour woven through serious, grounded stories.",
		"Nitesh Tiwari", "Indian director and screenwriter.", 1973, nil,
		"A father retells his hostel days to pull his son back from the brink.", false},
	{"Chak De! India", 2007, "Sports", "Competition as the stage for personal redemption.",
		"Shimit Amin", "Indian director and editor.", 1971, nil,
		"A disgraced hockey player coaches the national women's team to glory.", false},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	hash, err := password.Hash(seedPassword)
	if err != nil {
		log.Fatalf("hash seed password: %v", err)
	}

	// Upsert demo user (idempotent re-runs)
	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, name, email, birthday)
		VALUES ($1, $2, 'Movie Fan', $3, '1990-05-01')
		ON CONFLICT (username) DO UPDATE SET updated_at = NOW()
		RETURNING id`,
		seedUsername, hash, seedEmail,
	).Scan(&userID)
	if err != nil {
		log.Fatalf("upsert user: %v", err)
	}

	// Insert movies, skip any that already exist by title
	var inserted, skipped int
	var movieIDs []string
	for _, m := range movies {
		var id string
		err := pool.QueryRow(ctx, `
			INSERT INTO movies (
				title, release_year, genre_name, genre_description,
				director_name, director_bio, director_birth_year,
				director_death_year, description, featured
			)
			SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10
			WHERE NOT EXISTS (SELECT 1 FROM movies WHERE LOWER(title) = LOWER($1))
			RETURNING id`,
			m.title, m.year, m.genre, m.genreDesc,
			m.director, m.directorBio, m.birthYear,
			m.deathYear, m.description, m.featured,
		).Scan(&id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				skipped++
				continue
			}
			log.Fatalf("insert movie %q: %v", m.title, err)
		}
		movieIDs = append(movieIDs, id)
		inserted++
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:           %s / %s\n", seedUsername, seedPassword)
	fmt.Printf("  User ID:        %s\n", userID)
	fmt.Printf("  Movies created: %d  (skipped %d already existing)\n", inserted, skipped)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — log in:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/auth/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"username\":\"%s\",\"password\":\"%s\"}'\n", seedUsername, seedPassword)
	fmt.Println("    # → {\"message\":\"Login successful\",\"token\":\"eyJ...\"}")
	fmt.Println()
	fmt.Println("  Step 2 — browse the catalog:")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Println("    curl -s http://localhost:8080/movies -H \"Authorization: Bearer $JWT\"")
	fmt.Println()
	fmt.Println("  Step 3 — favorite a movie (use any ID from the list):")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/users/%s/movies/MOVIE_ID \\\n", seedUsername)
	fmt.Println("      -H \"Authorization: Bearer $JWT\"")
	if len(movieIDs) > 0 {
		fmt.Println()
		fmt.Println("  Sample movie IDs:")
		limit := 5
		if len(movieIDs) < limit {
			limit = len(movieIDs)
		}
		for _, id := range movieIDs[:limit] {
			fmt.Printf("    %s\n", id)
		}
	}
}
