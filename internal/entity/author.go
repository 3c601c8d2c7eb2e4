package entity

import "time"

type Author struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	BirthYear   *int       `json:"birth_year"`
	DeathYear   *int       `json:"death_year"`
	Nationality *string    `json:"nationality"`
	Biography   *string    `json:"biography"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
