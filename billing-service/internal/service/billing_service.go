package service

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ify-osakwe/hygea/shared/cqrs"
	"github.com/ify-osakwe/hygea/shared/errs"
	"github.com/ify-osakwe/hygea/shared/models"
)

// AccountStore is the slice of the repository the service needs.
type AccountStore interface {
	Create(account *models.BillingAccount) error
	GetByPatientID(patientID string) (*models.BillingAccount, error)
}

// BillingService provisions billing accounts. Provisioning is safe to
// repeat: the patient-service may retry a call whose response it never saw,
// so a duplicate request returns the account that already exists.
type BillingService struct {
	repo AccountStore
}

func NewBillingService(repo AccountStore) *BillingService {
	return &BillingService{repo: repo}
}

// CreateAccount provisions an account for a patient. The second return
// value reports whether a new account was created (false means the patient
// already had one).
func (s *BillingService) CreateAccount(cmd cqrs.CreateBillingAccountCommand) (*models.BillingAccount, bool, error) {
	account := &models.BillingAccount{
		ID:        uuid.NewString(),
		PatientID: cmd.PatientID,
		Name:      cmd.Name,
		Email:     cmd.Email,
		Status:    "ACTIVE",
		CreatedAt: time.Now().UTC(),
	}
	err := s.repo.Create(account)
	if err == nil {
		log.Printf("Provisioned billing account %s for patient %s", account.ID, account.PatientID)
		return account, true, nil
	}
	if errors.Is(err, errs.ErrAccountExists) {
		existing, getErr := s.repo.GetByPatientID(cmd.PatientID)
		if getErr != nil {
			return nil, false, getErr
		}
		return existing, false, nil
	}
	return nil, false, err
}

func (s *BillingService) GetAccount(q cqrs.GetBillingAccountQuery) (*models.BillingAccount, error) {
	return s.repo.GetByPatientID(q.PatientID)
}
