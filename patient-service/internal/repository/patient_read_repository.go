package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ify-osakwe/hygea/shared/errs"
	"github.com/ify-osakwe/hygea/shared/models"
	sharedredis "github.com/ify-osakwe/hygea/shared/redis"
)

const patientViewKeyPrefix = "patient:view:"

// PatientReadRepository handles all read operations for patients.
// It uses Redis as the primary read store, falling back to PostgreSQL on a
// miss. The command service refreshes the cache after every mutation.
type PatientReadRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[models.PatientView]
}

func NewPatientReadRepository(db *sql.DB, redisClient *goredis.Client) *PatientReadRepository {
	return &PatientReadRepository{
		db:    db,
		cache: sharedredis.NewViewCache[models.PatientView](redisClient, 0),
	}
}

// GetByID returns a PatientView from Redis first, then PostgreSQL.
func (r *PatientReadRepository) GetByID(ctx context.Context, id string) (*models.PatientView, error) {
	cacheKey := patientViewKeyPrefix + id

	if view, ok := r.cache.Get(ctx, cacheKey); ok {
		return view, nil
	}

	query := `
		SELECT id, name, email, address, date_of_birth, registered_date, created_at, updated_at
		FROM patients
		WHERE id = $1
	`
	view, err := scanPatientView(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, errs.ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get patient: %v", errs.ErrStore, err)
	}

	// Warm the cache
	r.CachePatientView(ctx, view)
	return view, nil
}

// ListAll reads every patient from PostgreSQL. Listing bypasses the per-id
// cache; the result set is small and always consistent with the write store.
func (r *PatientReadRepository) ListAll(ctx context.Context) ([]*models.PatientView, error) {
	query := `
		SELECT id, name, email, address, date_of_birth, registered_date, created_at, updated_at
		FROM patients
		ORDER BY registered_date
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list patients: %v", errs.ErrStore, err)
	}
	defer rows.Close()

	var views []*models.PatientView
	for rows.Next() {
		view, err := scanPatientView(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan patient: %v", errs.ErrStore, err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to list patients: %v", errs.ErrStore, err)
	}
	return views, nil
}

// CachePatientView stores or refreshes the Redis read model for a patient.
// Called by the command service after every mutation.
func (r *PatientReadRepository) CachePatientView(ctx context.Context, view *models.PatientView) {
	r.cache.Set(ctx, patientViewKeyPrefix+view.ID, view)
}

// InvalidatePatientView removes the Redis read model entry for a deleted patient.
func (r *PatientReadRepository) InvalidatePatientView(ctx context.Context, patientID string) {
	r.cache.Delete(ctx, patientViewKeyPrefix+patientID)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPatientView(row rowScanner) (*models.PatientView, error) {
	var view models.PatientView
	var dob, registered time.Time
	err := row.Scan(
		&view.ID, &view.Name, &view.Email, &view.Address,
		&dob, &registered, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	view.DateOfBirth = dob.Format(models.DateLayout)
	view.RegisteredDate = registered.Format(models.DateLayout)
	return &view, nil
}
