package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"blood-donor-network/internal/domain/blood"
	"blood-donor-network/internal/domain/bloodrequests"
)

type BloodRequestsRepo struct {
	db *sql.DB
}

func NewBloodRequestsRepo(db *sql.DB) *BloodRequestsRepo {
	return &BloodRequestsRepo{db: db}
}

const bloodRequestColumns = `
	id, patient_name, blood_type, units_required, urgency_level,
	hospital, contact_person, contact_phone, notes,
	latitude, longitude, status, created_at`

func (r *BloodRequestsRepo) Create(ctx context.Context, br bloodrequests.BloodRequest) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO blood_requests (`+bloodRequestColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		br.ID,
		br.PatientName,
		string(br.BloodType),
		br.UnitsRequired,
		string(br.UrgencyLevel),
		br.Hospital,
		br.ContactPerson,
		br.ContactPhone,
		br.Notes,
		toNullString(br.Latitude),
		toNullString(br.Longitude),
		string(br.Status),
		br.CreatedAt,
	)
	return err
}

func (r *BloodRequestsRepo) Update(ctx context.Context, br bloodrequests.BloodRequest) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE blood_requests
		SET
			patient_name = $2,
			units_required = $3,
			urgency_level = $4,
			hospital = $5,
			contact_person = $6,
			contact_phone = $7,
			notes = $8,
			status = $9
		WHERE id = $1
	`,
		br.ID,
		br.PatientName,
		br.UnitsRequired,
		string(br.UrgencyLevel),
		br.Hospital,
		br.ContactPerson,
		br.ContactPhone,
		br.Notes,
		string(br.Status),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return bloodrequests.ErrNotFound
	}
	return nil
}

func (r *BloodRequestsRepo) GetByID(ctx context.Context, id string) (bloodrequests.BloodRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return bloodrequests.BloodRequest{}, bloodrequests.ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+bloodRequestColumns+` FROM blood_requests WHERE id = $1`, id)
	return scanBloodRequest(row)
}

func (r *BloodRequestsRepo) ListAll(ctx context.Context) ([]bloodrequests.BloodRequest, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+bloodRequestColumns+` FROM blood_requests ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]bloodrequests.BloodRequest, 0)
	for rows.Next() {
		br, err := scanBloodRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, br)
	}
	return out, rows.Err()
}

func scanBloodRequest(s scanner) (bloodrequests.BloodRequest, error) {
	var (
		br              bloodrequests.BloodRequest
		bt, urgency, st string
		lat, lng        sql.NullString
	)
	if err := s.Scan(
		&br.ID,
		&br.PatientName,
		&bt,
		&br.UnitsRequired,
		&urgency,
		&br.Hospital,
		&br.ContactPerson,
		&br.ContactPhone,
		&br.Notes,
		&lat,
		&lng,
		&st,
		&br.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return bloodrequests.BloodRequest{}, bloodrequests.ErrNotFound
		}
		return bloodrequests.BloodRequest{}, err
	}

	br.BloodType = blood.Type(bt)
	br.UrgencyLevel = blood.Urgency(urgency)
	br.Status = bloodrequests.Status(st)
	br.Latitude = fromNullString(lat)
	br.Longitude = fromNullString(lng)
	return br, nil
}
