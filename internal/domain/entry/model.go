package entry

import "time"

// Entry represents one shadowing session record.
type Entry struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Physician    string    `json:"physician"`
	Specialty    string    `json:"specialty"`
	Date         string    `json:"date"` // free-text date label, never parsed
	Hours        float64   `json:"hours"`
	Observations string    `json:"observations"`
	Reflections  string    `json:"reflections"`
	Deleted      bool      `json:"deleted"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateRequest describes an entry creation request.
type CreateRequest struct {
	Physician    string
	Specialty    string
	Date         string
	Hours        float64
	Observations string
	Reflections  string
}
