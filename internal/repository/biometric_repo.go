package repository

import (
	"context"

	"github.com/danivc/BioHackerBack/internal/models"
	"github.com/jackc/pgx/v5"
)

type CreateBiometricInput struct {
	UserID       int64
	SleepQuality *int
	EnergyLevel  *int
	StressLevel  *int
	FocusLevel   *int
	MoodLevel    *int
	Notes        *string
}

type BiometricRepository struct {
	db DBTX
}

func NewBiometricRepository(db DBTX) *BiometricRepository {
	return &BiometricRepository{db: db}
}

const biometricColumns = `id, user_id, date, sleep_quality, energy_level, stress_level, focus_level, mood_level, notes`

func scanBiometric(row pgx.Row) (*models.Biometric, error) {
	var b models.Biometric
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.Date,
		&b.SleepQuality,
		&b.EnergyLevel,
		&b.StressLevel,
		&b.FocusLevel,
		&b.MoodLevel,
		&b.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BiometricRepository) Create(
	ctx context.Context,
	input CreateBiometricInput,
) (*models.Biometric, error) {
	query := `
		INSERT INTO biometrics (user_id, sleep_quality, energy_level, stress_level, focus_level, mood_level, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + biometricColumns + `
	`
	return scanBiometric(r.db.QueryRow(
		ctx,
		query,
		input.UserID,
		input.SleepQuality,
		input.EnergyLevel,
		input.StressLevel,
		input.FocusLevel,
		input.MoodLevel,
		input.Notes,
	))
}

func (r *BiometricRepository) ListByUserID(ctx context.Context, userID int64) ([]models.Biometric, error) {
	query := `
		SELECT ` + biometricColumns + `
		FROM biometrics
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
	`
	return r.list(ctx, query, userID)
}

// ListRecent returns the trailing window in chronological order. The lower
// bound is closed: an entry dated exactly now-days is included.
func (r *BiometricRepository) ListRecent(ctx context.Context, userID int64, days int) ([]models.Biometric, error) {
	query := `
		SELECT ` + biometricColumns + `
		FROM biometrics
		WHERE user_id = $1
		  AND date >= NOW() - ($2::int * INTERVAL '1 day')
		ORDER BY date ASC, id ASC
	`
	return r.list(ctx, query, userID, days)
}

func (r *BiometricRepository) list(ctx context.Context, query string, args ...any) ([]models.Biometric, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	biometrics := make([]models.Biometric, 0)
	for rows.Next() {
		var b models.Biometric
		if err := rows.Scan(
			&b.ID,
			&b.UserID,
			&b.Date,
			&b.SleepQuality,
			&b.EnergyLevel,
			&b.StressLevel,
			&b.FocusLevel,
			&b.MoodLevel,
			&b.Notes,
		); err != nil {
			return nil, err
		}
		biometrics = append(biometrics, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return biometrics, nil
}
