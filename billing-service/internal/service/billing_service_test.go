package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ify-osakwe/hygea/shared/cqrs"
	"github.com/ify-osakwe/hygea/shared/errs"
	"github.com/ify-osakwe/hygea/shared/models"
)

type fakeAccountStore struct {
	byPatient map[string]*models.BillingAccount
	createErr error
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{byPatient: make(map[string]*models.BillingAccount)}
}

func (f *fakeAccountStore) Create(account *models.BillingAccount) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byPatient[account.PatientID]; ok {
		return fmt.Errorf("%w: patient %s", errs.ErrAccountExists, account.PatientID)
	}
	f.byPatient[account.PatientID] = account
	return nil
}

func (f *fakeAccountStore) GetByPatientID(patientID string) (*models.BillingAccount, error) {
	if account, ok := f.byPatient[patientID]; ok {
		return account, nil
	}
	return nil, errs.ErrAccountNotFound
}

func TestCreateAccount(t *testing.T) {
	store := newFakeAccountStore()
	svc := NewBillingService(store)

	account, created, err := svc.CreateAccount(cqrs.CreateBillingAccountCommand{
		PatientID: "patient-1", Name: "Ada", Email: "ada@example.com",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !created {
		t.Error("expected created=true for a first-time provision")
	}
	if account.ID == "" || account.PatientID != "patient-1" || account.Status != "ACTIVE" {
		t.Errorf("unexpected account: %+v", account)
	}
}

func TestCreateAccountIdempotent(t *testing.T) {
	store := newFakeAccountStore()
	svc := NewBillingService(store)

	first, _, err := svc.CreateAccount(cqrs.CreateBillingAccountCommand{
		PatientID: "patient-1", Name: "Ada", Email: "ada@example.com",
	})
	if err != nil {
		t.Fatalf("first provision failed: %v", err)
	}

	second, created, err := svc.CreateAccount(cqrs.CreateBillingAccountCommand{
		PatientID: "patient-1", Name: "Ada", Email: "ada@example.com",
	})
	if err != nil {
		t.Fatalf("expected replay to succeed, got %v", err)
	}
	if created {
		t.Error("expected created=false on replay")
	}
	if second.ID != first.ID {
		t.Errorf("replay returned a different account: %s vs %s", second.ID, first.ID)
	}
}

func TestCreateAccountStoreFailure(t *testing.T) {
	store := newFakeAccountStore()
	store.createErr = fmt.Errorf("%w: connection refused", errs.ErrStore)
	svc := NewBillingService(store)

	_, _, err := svc.CreateAccount(cqrs.CreateBillingAccountCommand{
		PatientID: "patient-1", Name: "Ada", Email: "ada@example.com",
	})
	if !errors.Is(err, errs.ErrStore) {
		t.Fatalf("expected ErrStore, got %v", err)
	}
}

func TestGetAccount(t *testing.T) {
	store := newFakeAccountStore()
	svc := NewBillingService(store)

	if _, err := svc.GetAccount(cqrs.GetBillingAccountQuery{PatientID: "missing"}); !errors.Is(err, errs.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	created, _, err := svc.CreateAccount(cqrs.CreateBillingAccountCommand{
		PatientID: "patient-1", Name: "Ada", Email: "ada@example.com",
	})
	if err != nil {
		t.Fatalf("provision failed: %v", err)
	}

	got, err := svc.GetAccount(cqrs.GetBillingAccountQuery{PatientID: "patient-1"})
	if err != nil {
		t.Fatalf("expected account, got %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("expected account %s, got %s", created.ID, got.ID)
	}
}
