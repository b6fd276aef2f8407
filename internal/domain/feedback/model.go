package feedback

import (
	"time"

	"github.com/google/uuid"
)

// Categories accepted on submission.
var Categories = []string{"general", "bug", "feature", "improvement"}

// Feedback is one submitted entry.
type Feedback struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Category  string    `json:"category"`
	Rating    int       `json:"rating"`
	Comments  string    `json:"comments,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmitRequest is the submission payload.
type SubmitRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Category string `json:"category"`
	Rating   int    `json:"rating"`
	Comments string `json:"comments,omitempty"`
}

// recentStatsCount is how many of the newest entries Stats carries.
const recentStatsCount = 5

// Stats summarizes everything submitted so far.
type Stats struct {
	Total         int            `json:"total"`
	AverageRating float64        `json:"average_rating"`
	ByCategory    map[string]int `json:"by_category"`
	Recent        []*Feedback    `json:"recent"`
}
