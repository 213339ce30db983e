package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Connection is a saved partner: the birth data needed to chart them plus
// the relationship lens and the last computed compatibility score.
type Connection struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	BirthDate string    `json:"birth_date"` // YYYY-MM-DD
	BirthTime string    `json:"birth_time"` // HH:MM, optional
	BirthCity string    `json:"birth_city"`
	RelType   string    `json:"type"` // love | work | social
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// Snapshot is one day's stored dashboard result, keyed by calendar date.
type Snapshot struct {
	Date      string    `json:"date"` // YYYY-MM-DD, local day
	Mind      int       `json:"mind"`
	Body      int       `json:"body"`
	Soul      int       `json:"soul"`
	Alignment int       `json:"alignment"`
	Tier      string    `json:"tier"`
	CreatedAt time.Time `json:"created_at"`
}
