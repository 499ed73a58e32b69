package domain

import "time"

// SyncOutcome is what a sync invocation reports back to its caller.
// Success false with no Error means the site loaded but produced zero
// extractable rows, which alerting treats differently from a hard failure.
type SyncOutcome struct {
	Success       bool   `json:"success"`
	VehiclesFound int    `json:"vehiclesFound"`
	Inserted      int    `json:"inserted"`
	Updated       int    `json:"updated"`
	Errors        int    `json:"errors"`
	Error         string `json:"error,omitempty"`
}

// SyncRun is the persisted record of one sync invocation
type SyncRun struct {
	ID            string     `json:"id" gorm:"primaryKey"`
	StartedAt     time.Time  `json:"started_at"`
	FinishedAt    *time.Time `json:"finished_at,omitempty"`
	Success       bool       `json:"success"`
	VehiclesFound int        `json:"vehicles_found"`
	Inserted      int        `json:"inserted"`
	Updated       int        `json:"updated"`
	Errors        int        `json:"errors"`
	Error         string     `json:"error,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
