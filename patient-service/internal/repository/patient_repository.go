package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/ify-osakwe/hygea/shared/errs"
	"github.com/ify-osakwe/hygea/shared/models"
)

// PatientWriteRepository handles all state-mutating operations for patients.
// It operates exclusively against the PostgreSQL write store (source of
// truth). The unique index on patients.email is the authoritative uniqueness
// constraint; callers may pre-check with ExistsByEmail but must still handle
// errs.ErrEmailExists from Create and Update.
type PatientWriteRepository struct {
	db *sql.DB
}

func NewPatientWriteRepository(db *sql.DB) *PatientWriteRepository {
	return &PatientWriteRepository{db: db}
}

func (r *PatientWriteRepository) FindAll() ([]*models.Patient, error) {
	query := `
		SELECT id, name, email, address, date_of_birth, registered_date, created_at, updated_at
		FROM patients
		ORDER BY registered_date
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list patients: %v", errs.ErrStore, err)
	}
	defer rows.Close()

	var patients []*models.Patient
	for rows.Next() {
		var p models.Patient
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Email, &p.Address,
			&p.DateOfBirth, &p.RegisteredDate, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: failed to scan patient: %v", errs.ErrStore, err)
		}
		patients = append(patients, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to list patients: %v", errs.ErrStore, err)
	}
	return patients, nil
}

func (r *PatientWriteRepository) GetByID(id string) (*models.Patient, error) {
	query := `
		SELECT id, name, email, address, date_of_birth, registered_date, created_at, updated_at
		FROM patients
		WHERE id = $1
	`
	var p models.Patient
	err := r.db.QueryRow(query, id).Scan(
		&p.ID, &p.Name, &p.Email, &p.Address,
		&p.DateOfBirth, &p.RegisteredDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errs.ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get patient: %v", errs.ErrStore, err)
	}
	return &p, nil
}

func (r *PatientWriteRepository) ExistsByEmail(email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM patients WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: failed to check email: %v", errs.ErrStore, err)
	}
	return exists, nil
}

// ExistsByEmailExcluding reports whether a patient other than id holds email.
func (r *PatientWriteRepository) ExistsByEmailExcluding(email, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM patients WHERE email = $1 AND id <> $2)`, email, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: failed to check email: %v", errs.ErrStore, err)
	}
	return exists, nil
}

func (r *PatientWriteRepository) Create(patient *models.Patient) error {
	query := `
		INSERT INTO patients (id, name, email, address, date_of_birth, registered_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(query,
		patient.ID, patient.Name, patient.Email, patient.Address,
		patient.DateOfBirth, patient.RegisteredDate, patient.CreatedAt, patient.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", errs.ErrEmailExists, patient.Email)
		}
		return fmt.Errorf("%w: failed to create patient: %v", errs.ErrStore, err)
	}
	return nil
}

func (r *PatientWriteRepository) Update(patient *models.Patient) error {
	query := `
		UPDATE patients
		SET name = $2, email = $3, address = $4, date_of_birth = $5, updated_at = $6
		WHERE id = $1
	`
	result, err := r.db.Exec(query,
		patient.ID, patient.Name, patient.Email, patient.Address,
		patient.DateOfBirth, patient.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", errs.ErrEmailExists, patient.Email)
		}
		return fmt.Errorf("%w: failed to update patient: %v", errs.ErrStore, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to check rows affected: %v", errs.ErrStore, err)
	}
	if rows == 0 {
		return errs.ErrPatientNotFound
	}
	return nil
}

// Delete removes the row. A missing id is reported as errs.ErrPatientNotFound
// so repeated deletes behave identically.
func (r *PatientWriteRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete patient: %v", errs.ErrStore, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to check rows affected: %v", errs.ErrStore, err)
	}
	if rows == 0 {
		return errs.ErrPatientNotFound
	}
	return nil
}

// isUniqueViolation reports a PostgreSQL unique_violation (23505).
func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == "23505"
}
