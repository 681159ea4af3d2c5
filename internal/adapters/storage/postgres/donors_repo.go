package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"blood-donor-network/internal/domain/blood"
	"blood-donor-network/internal/domain/donors"
)

type DonorsRepo struct {
	db *sql.DB
}

func NewDonorsRepo(db *sql.DB) *DonorsRepo {
	return &DonorsRepo{db: db}
}

const donorColumns = `
	id, full_name, email, phone,
	blood_type, date_of_birth, gender, weight, address,
	latitude, longitude,
	is_available, is_verified, total_donations, rating, last_donation,
	created_at`

func (r *DonorsRepo) Create(ctx context.Context, d donors.Donor) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO donors (`+donorColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`,
		d.ID,
		d.FullName,
		d.Email,
		d.Phone,
		string(d.BloodType),
		d.DateOfBirth,
		d.Gender,
		d.Weight,
		d.Address,
		toNullString(d.Latitude),
		toNullString(d.Longitude),
		d.IsAvailable,
		d.IsVerified,
		d.TotalDonations,
		d.Rating,
		toNullString(d.LastDonation),
		d.CreatedAt,
	)
	return err
}

func (r *DonorsRepo) Update(ctx context.Context, d donors.Donor) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE donors
		SET
			full_name = $2,
			email = $3,
			phone = $4,
			blood_type = $5,
			gender = $6,
			weight = $7,
			address = $8,
			latitude = $9,
			longitude = $10,
			is_available = $11,
			is_verified = $12,
			total_donations = $13,
			rating = $14,
			last_donation = $15
		WHERE id = $1
	`,
		d.ID,
		d.FullName,
		d.Email,
		d.Phone,
		string(d.BloodType),
		d.Gender,
		d.Weight,
		d.Address,
		toNullString(d.Latitude),
		toNullString(d.Longitude),
		d.IsAvailable,
		d.IsVerified,
		d.TotalDonations,
		d.Rating,
		toNullString(d.LastDonation),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return donors.ErrNotFound
	}
	return nil
}

func (r *DonorsRepo) GetByID(ctx context.Context, id string) (donors.Donor, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return donors.Donor{}, donors.ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+donorColumns+` FROM donors WHERE id = $1`, id)
	return scanDonor(row)
}

func (r *DonorsRepo) GetByEmail(ctx context.Context, email string) (donors.Donor, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+donorColumns+` FROM donors WHERE lower(email) = lower($1)`, email)
	return scanDonor(row)
}

// ListAll ordena por seq para respetar el orden de inserción.
func (r *DonorsRepo) ListAll(ctx context.Context) ([]donors.Donor, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+donorColumns+` FROM donors ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]donors.Donor, 0)
	for rows.Next() {
		d, err := scanDonor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDonor(s scanner) (donors.Donor, error) {
	var (
		d              donors.Donor
		bt             string
		lat, lng, last sql.NullString
	)
	if err := s.Scan(
		&d.ID,
		&d.FullName,
		&d.Email,
		&d.Phone,
		&bt,
		&d.DateOfBirth,
		&d.Gender,
		&d.Weight,
		&d.Address,
		&lat,
		&lng,
		&d.IsAvailable,
		&d.IsVerified,
		&d.TotalDonations,
		&d.Rating,
		&last,
		&d.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return donors.Donor{}, donors.ErrNotFound
		}
		return donors.Donor{}, err
	}

	d.BloodType = blood.Type(bt)
	d.Latitude = fromNullString(lat)
	d.Longitude = fromNullString(lng)
	d.LastDonation = fromNullString(last)
	return d, nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
