package service

import (
	"context"

	"github.com/ify-osakwe/hygea/shared/events"
	"github.com/ify-osakwe/hygea/shared/models"
)

// PatientStore is the durable record store the command service writes to.
// Implementations must enforce email uniqueness as a hard constraint on
// Create and Update (returning errs.ErrEmailExists), regardless of any
// pre-check the caller performed.
type PatientStore interface {
	FindAll() ([]*models.Patient, error)
	GetByID(id string) (*models.Patient, error)
	ExistsByEmail(email string) (bool, error)
	ExistsByEmailExcluding(email, id string) (bool, error)
	Create(patient *models.Patient) error
	Update(patient *models.Patient) error
	Delete(id string) error
}

// BillingClient provisions a billing account for a persisted patient.
// The call is synchronous with a bounded timeout owned by the implementation.
type BillingClient interface {
	CreateAccount(ctx context.Context, patientID, name, email string) error
}

// EventPublisher hands a patient lifecycle event to the message bus.
// A nil return means the broker accepted the event for delivery.
type EventPublisher interface {
	Publish(ctx context.Context, topic, eventType, key string, data any) error
}

// ViewCacher keeps the read model in step with the write store.
// Cache operations are best-effort and never fail the command.
type ViewCacher interface {
	CachePatientView(ctx context.Context, view *models.PatientView)
	InvalidatePatientView(ctx context.Context, patientID string)
}

// PatientReader is the read store behind the query service.
type PatientReader interface {
	GetByID(ctx context.Context, id string) (*models.PatientView, error)
	ListAll(ctx context.Context) ([]*models.PatientView, error)
}

var _ EventPublisher = (*events.Publisher)(nil)
