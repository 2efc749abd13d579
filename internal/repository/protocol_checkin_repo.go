package repository

import (
	"context"

	"github.com/danivc/BioHackerBack/internal/models"
)

type CreateProtocolCheckInInput struct {
	ProtocolID int64
	UserID     int64
	Notes      *string
}

type ProtocolCheckInRepository struct {
	db DBTX
}

func NewProtocolCheckInRepository(db DBTX) *ProtocolCheckInRepository {
	return &ProtocolCheckInRepository{db: db}
}

func (r *ProtocolCheckInRepository) Create(
	ctx context.Context,
	input CreateProtocolCheckInInput,
) (*models.ProtocolCheckIn, error) {
	query := `
		INSERT INTO protocol_check_ins (protocol_id, user_id, notes)
		VALUES ($1, $2, $3)
		RETURNING id, protocol_id, user_id, check_in_date, notes
	`
	var checkIn models.ProtocolCheckIn
	err := r.db.QueryRow(ctx, query, input.ProtocolID, input.UserID, input.Notes).Scan(
		&checkIn.ID,
		&checkIn.ProtocolID,
		&checkIn.UserID,
		&checkIn.CheckInDate,
		&checkIn.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &checkIn, nil
}

func (r *ProtocolCheckInRepository) ListByProtocolID(
	ctx context.Context,
	protocolID int64,
) ([]models.ProtocolCheckIn, error) {
	query := `
		SELECT id, protocol_id, user_id, check_in_date, notes
		FROM protocol_check_ins
		WHERE protocol_id = $1
		ORDER BY check_in_date DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, protocolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	checkIns := make([]models.ProtocolCheckIn, 0)
	for rows.Next() {
		var checkIn models.ProtocolCheckIn
		if err := rows.Scan(
			&checkIn.ID,
			&checkIn.ProtocolID,
			&checkIn.UserID,
			&checkIn.CheckInDate,
			&checkIn.Notes,
		); err != nil {
			return nil, err
		}
		checkIns = append(checkIns, checkIn)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return checkIns, nil
}
