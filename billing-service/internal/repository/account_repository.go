package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/ify-osakwe/hygea/shared/errs"
	"github.com/ify-osakwe/hygea/shared/models"
)

// AccountRepository persists billing accounts. billing_accounts.patient_id
// carries a unique index so a patient can hold at most one account.
type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(account *models.BillingAccount) error {
	query := `
		INSERT INTO billing_accounts (id, patient_id, name, email, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(query,
		account.ID, account.PatientID, account.Name, account.Email,
		account.Status, account.CreatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("%w: %s", errs.ErrAccountExists, account.PatientID)
		}
		return fmt.Errorf("failed to create billing account: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByPatientID(patientID string) (*models.BillingAccount, error) {
	query := `
		SELECT id, patient_id, name, email, status, created_at
		FROM billing_accounts
		WHERE patient_id = $1
	`
	var account models.BillingAccount
	err := r.db.QueryRow(query, patientID).Scan(
		&account.ID, &account.PatientID, &account.Name, &account.Email,
		&account.Status, &account.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errs.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get billing account: %w", err)
	}
	return &account, nil
}
