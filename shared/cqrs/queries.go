package cqrs

// ---------- Patient queries ----------

// GetPatientQuery fetches a single patient by ID.
type GetPatientQuery struct {
	PatientID string
}

// ListPatientsQuery fetches all patients.
type ListPatientsQuery struct{}

// ---------- Billing queries ----------

// GetBillingAccountQuery fetches the billing account provisioned for a patient.
type GetBillingAccountQuery struct {
	PatientID string
}

// ---------- Auth queries ----------

// ValidateTokenQuery checks whether a bearer token is currently valid.
type ValidateTokenQuery struct {
	Token string
}
