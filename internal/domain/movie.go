package domain

import "time"

type Genre struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Director struct {
	Name      string `json:"name"`
	Bio       string `json:"bio,omitempty"`
	BirthYear int    `json:"birth_year"`
	DeathYear *int   `json:"death_year,omitempty"`
}

// Movie is read-only through the API; the catalog is maintained out of band
// (migrations and the seed command).
type Movie struct {
	ID          string
	Title       string
	ReleaseYear int
	Genre       Genre
	Director    Director
	Description string
	ImageURL    *string
	Featured    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
