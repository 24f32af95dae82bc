package events

import "time"

// Event types
const (
	PatientCreated = "patient.created"
	PatientUpdated = "patient.updated"
	PatientDeleted = "patient.deleted"
)

// Topic names
const (
	PatientEventsTopic = "patient.events"
)

// Event is the envelope written to the broker. Data carries one of the
// typed payloads below.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// PatientCreatedEvent announces a fully provisioned patient: the record is
// durable and the billing account exists by the time this is published.
type PatientCreatedEvent struct {
	PatientID string `json:"patientId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

type PatientUpdatedEvent struct {
	PatientID string `json:"patientId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

type PatientDeletedEvent struct {
	PatientID string `json:"patientId"`
}
