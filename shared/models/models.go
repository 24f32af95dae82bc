package models

import "time"

// Patient is the write model persisted by the patient service.
// Email is unique across all patients, enforced by the store.
type Patient struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Address        string    `json:"address"`
	DateOfBirth    time.Time `json:"dateOfBirth"`
	RegisteredDate time.Time `json:"registeredDate"`
	CreatedAt      time.Time `json:"createdTimestamp"`
	UpdatedAt      time.Time `json:"updatedTimestamp"`
}

// User is an operator account in the auth service.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdTimestamp"`
}

// BillingAccount is the account provisioned by the billing service for a
// patient. PatientID is unique: provisioning is safe to repeat.
type BillingAccount struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patientId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdTimestamp"`
}
