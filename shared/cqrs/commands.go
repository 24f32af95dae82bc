package cqrs

import "time"

type CreatePatientCommand struct {
	Name        string
	Email       string
	Address     string
	DateOfBirth time.Time
}

type UpdatePatientCommand struct {
	PatientID   string
	Name        string
	Email       string
	Address     string
	DateOfBirth time.Time
}

type DeletePatientCommand struct {
	PatientID string
}

type CreateBillingAccountCommand struct {
	PatientID string
	Name      string
	Email     string
}

type LoginCommand struct {
	Email    string
	Password string
}

type RefreshTokenCommand struct {
	Token string
}
