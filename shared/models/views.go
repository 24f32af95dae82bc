package models

import "time"

// DateLayout is the wire format for dates of birth and registration dates.
const DateLayout = "2006-01-02"

// PatientView is the read-optimised projection of a patient. Dates are
// pre-formatted so the API and the Redis cache share one representation.
type PatientView struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Address        string    `json:"address"`
	DateOfBirth    string    `json:"dateOfBirth"`
	RegisteredDate string    `json:"registeredDate"`
	CreatedAt      time.Time `json:"createdTimestamp"`
	UpdatedAt      time.Time `json:"updatedTimestamp"`
}
