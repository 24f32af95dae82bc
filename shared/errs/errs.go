// Package errs defines the error kinds shared across services. Repositories,
// clients and services wrap these sentinels with fmt.Errorf("...: %w", ...);
// handlers match them with errors.Is to pick the response status.
package errs

import "errors"

var (
	// ErrEmailExists is returned when a patient write would violate the
	// email uniqueness constraint. The patients.email unique index is the
	// authoritative source; service-level pre-checks only short-circuit.
	ErrEmailExists = errors.New("a patient with this email already exists")

	// ErrPatientNotFound is returned for lookups, updates and deletes
	// against an id that is not in the store.
	ErrPatientNotFound = errors.New("patient not found")

	// ErrStore marks an infrastructure failure in the write store.
	ErrStore = errors.New("store failure")

	// ErrBillingUnavailable marks a transport-level failure reaching the
	// billing service (connection refused, timeout).
	ErrBillingUnavailable = errors.New("billing service unavailable")

	// ErrBillingRejected marks a non-2xx answer from the billing service.
	ErrBillingRejected = errors.New("billing account creation rejected")

	// ErrEventPublish marks an event that was not accepted by the broker.
	// The operation that produced the event has already completed.
	ErrEventPublish = errors.New("event not accepted by broker")

	// ErrUserNotFound is returned by the auth user store.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountExists is returned by the billing store when the patient
	// already has a billing account.
	ErrAccountExists = errors.New("billing account already exists for patient")

	// ErrAccountNotFound is returned by the billing store for lookups.
	ErrAccountNotFound = errors.New("billing account not found")
)
