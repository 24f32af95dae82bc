package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ify-osakwe/hygea/shared/cqrs"
	"github.com/ify-osakwe/hygea/shared/errs"
	"github.com/ify-osakwe/hygea/shared/events"
	"github.com/ify-osakwe/hygea/shared/models"
)

// PatientCommandService orchestrates patient mutations across the record
// store, the billing service and the event bus. It holds no state of its
// own; all shared state lives in the store, so instances are safe for
// concurrent use.
type PatientCommandService struct {
	store     PatientStore
	billing   BillingClient
	publisher EventPublisher
	cache     ViewCacher
}

func NewPatientCommandService(
	store PatientStore,
	billing BillingClient,
	publisher EventPublisher,
	cache ViewCacher,
) *PatientCommandService {
	return &PatientCommandService{
		store:     store,
		billing:   billing,
		publisher: publisher,
		cache:     cache,
	}
}

// CreatePatient persists a new patient, provisions a billing account and
// publishes patient.created, in that order. The ordering matters: billing
// needs a durable identifier, and the event announces a fully provisioned
// patient to downstream consumers.
//
// The three steps hit three failure domains and there is no transaction
// spanning them. The contract is:
//
//   - duplicate email (pre-check or store constraint): nothing happened;
//   - store failure: nothing happened;
//   - billing failure: the patient row stays committed with no billing
//     account and no event. There is no compensating delete or outbox; the
//     partial state is logged for out-of-band reconciliation and the error
//     wraps errs.ErrBillingUnavailable or errs.ErrBillingRejected;
//   - publish failure: the patient is fully provisioned but downstream
//     consumers missed the event. The created patient is returned together
//     with an error wrapping errs.ErrEventPublish.
func (s *PatientCommandService) CreatePatient(cmd cqrs.CreatePatientCommand) (*models.Patient, error) {
	exists, err := s.store.ExistsByEmail(cmd.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", errs.ErrEmailExists, cmd.Email)
	}

	now := time.Now().UTC()
	patient := &models.Patient{
		ID:             uuid.NewString(),
		Name:           cmd.Name,
		Email:          cmd.Email,
		Address:        cmd.Address,
		DateOfBirth:    cmd.DateOfBirth,
		RegisteredDate: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	// The store's unique index is the authority on email uniqueness; a
	// concurrent creator that lost the race surfaces as ErrEmailExists here
	// even though the pre-check above passed.
	if err := s.store.Create(patient); err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := s.billing.CreateAccount(ctx, patient.ID, patient.Name, patient.Email); err != nil {
		log.Printf("Billing provisioning failed for patient %s; record kept without billing account: %v",
			patient.ID, err)
		return nil, fmt.Errorf("create billing account for patient %s: %w", patient.ID, err)
	}

	s.cache.CachePatientView(ctx, patientToView(patient))

	if err := s.publisher.Publish(ctx, events.PatientEventsTopic, events.PatientCreated, patient.ID,
		events.PatientCreatedEvent{
			PatientID: patient.ID,
			Name:      patient.Name,
			Email:     patient.Email,
		}); err != nil {
		log.Printf("Failed to publish patient.created event for %s: %v", patient.ID, err)
		return patient, fmt.Errorf("%w: patient %s: %v", errs.ErrEventPublish, patient.ID, err)
	}

	return patient, nil
}

// UpdatePatient is a pure store operation: no billing or event traffic.
// Email uniqueness is re-checked excluding the patient's own id, so keeping
// the same email is always allowed.
func (s *PatientCommandService) UpdatePatient(cmd cqrs.UpdatePatientCommand) (*models.PatientView, error) {
	patient, err := s.store.GetByID(cmd.PatientID)
	if err != nil {
		return nil, err
	}

	taken, err := s.store.ExistsByEmailExcluding(cmd.Email, cmd.PatientID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: %s", errs.ErrEmailExists, cmd.Email)
	}

	patient.Name = cmd.Name
	patient.Email = cmd.Email
	patient.Address = cmd.Address
	patient.DateOfBirth = cmd.DateOfBirth
	patient.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(patient); err != nil {
		return nil, err
	}

	view := patientToView(patient)
	s.cache.CachePatientView(context.Background(), view)
	return view, nil
}

// DeletePatient removes the record only. Billing accounts are not torn down
// and no event is published; downstream systems are not notified.
func (s *PatientCommandService) DeletePatient(cmd cqrs.DeletePatientCommand) error {
	if err := s.store.Delete(cmd.PatientID); err != nil {
		return err
	}
	s.cache.InvalidatePatientView(context.Background(), cmd.PatientID)
	return nil
}

// patientToView converts the PostgreSQL write model to the Redis read view model.
func patientToView(p *models.Patient) *models.PatientView {
	return &models.PatientView{
		ID:             p.ID,
		Name:           p.Name,
		Email:          p.Email,
		Address:        p.Address,
		DateOfBirth:    p.DateOfBirth.Format(models.DateLayout),
		RegisteredDate: p.RegisteredDate.Format(models.DateLayout),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
