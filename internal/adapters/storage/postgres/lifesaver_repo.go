package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"blood-donor-network/internal/domain/blood"
	"blood-donor-network/internal/domain/lifesaver"
)

type LifeSaverRepo struct {
	db *sql.DB
}

func NewLifeSaverRepo(db *sql.DB) *LifeSaverRepo {
	return &LifeSaverRepo{db: db}
}

const lifeSaverColumns = `
	id, requester_name, requester_email, requester_phone,
	selected_donor_id, blood_type, units_required, urgency_level,
	hospital, request_reason, notes, status,
	previous_request_id, tried_donor_ids,
	created_at, updated_at`

// execer lo cumplen *sql.DB y *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *LifeSaverRepo) Create(ctx context.Context, req lifesaver.Request) error {
	return insertLifeSaver(ctx, r.db, req)
}

// Update no toca donante, grupo ni auditoría de la cadena: son inmutables.
func (r *LifeSaverRepo) Update(ctx context.Context, req lifesaver.Request) error {
	return updateLifeSaver(ctx, r.db, req)
}

// Decline guarda el update y el seguimiento en una sola transacción.
func (r *LifeSaverRepo) Decline(ctx context.Context, declined lifesaver.Request, followUp *lifesaver.Request) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := updateLifeSaver(ctx, tx, declined); err != nil {
		return err
	}
	if followUp != nil {
		if err := insertLifeSaver(ctx, tx, *followUp); err != nil {
			return fmt.Errorf("insert follow-up: %w", err)
		}
	}
	return tx.Commit()
}

func insertLifeSaver(ctx context.Context, ex execer, req lifesaver.Request) error {
	tried, err := encodeTried(req.TriedDonorIDs)
	if err != nil {
		return err
	}
	_, err = ex.ExecContext(ctx, `
		INSERT INTO life_saver_requests (`+lifeSaverColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`,
		req.ID,
		req.RequesterName,
		req.RequesterEmail,
		req.RequesterPhone,
		req.SelectedDonorID,
		string(req.BloodType),
		req.UnitsRequired,
		string(req.UrgencyLevel),
		req.Hospital,
		req.RequestReason,
		req.Notes,
		string(req.Status),
		req.PreviousRequestID,
		tried,
		req.CreatedAt,
		req.UpdatedAt,
	)
	return err
}

func updateLifeSaver(ctx context.Context, ex execer, req lifesaver.Request) error {
	res, err := ex.ExecContext(ctx, `
		UPDATE life_saver_requests
		SET
			requester_name = $2,
			requester_email = $3,
			requester_phone = $4,
			units_required = $5,
			urgency_level = $6,
			hospital = $7,
			request_reason = $8,
			notes = $9,
			status = $10,
			updated_at = $11
		WHERE id = $1
	`,
		req.ID,
		req.RequesterName,
		req.RequesterEmail,
		req.RequesterPhone,
		req.UnitsRequired,
		string(req.UrgencyLevel),
		req.Hospital,
		req.RequestReason,
		req.Notes,
		string(req.Status),
		req.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return lifesaver.ErrNotFound
	}
	return nil
}

func (r *LifeSaverRepo) GetByID(ctx context.Context, id string) (lifesaver.Request, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return lifesaver.Request{}, lifesaver.ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+lifeSaverColumns+` FROM life_saver_requests WHERE id = $1`, id)
	return scanLifeSaver(row)
}

func (r *LifeSaverRepo) ListAll(ctx context.Context) ([]lifesaver.Request, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+lifeSaverColumns+` FROM life_saver_requests ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]lifesaver.Request, 0)
	for rows.Next() {
		req, err := scanLifeSaver(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func scanLifeSaver(s scanner) (lifesaver.Request, error) {
	var (
		req                    lifesaver.Request
		bt, urgency, st, tried string
	)
	if err := s.Scan(
		&req.ID,
		&req.RequesterName,
		&req.RequesterEmail,
		&req.RequesterPhone,
		&req.SelectedDonorID,
		&bt,
		&req.UnitsRequired,
		&urgency,
		&req.Hospital,
		&req.RequestReason,
		&req.Notes,
		&st,
		&req.PreviousRequestID,
		&tried,
		&req.CreatedAt,
		&req.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return lifesaver.Request{}, lifesaver.ErrNotFound
		}
		return lifesaver.Request{}, err
	}

	req.BloodType = blood.Type(bt)
	req.UrgencyLevel = blood.Urgency(urgency)
	req.Status = lifesaver.Status(st)

	ids, err := decodeTried(tried)
	if err != nil {
		return lifesaver.Request{}, fmt.Errorf("life saver request %s: %w", req.ID, err)
	}
	req.TriedDonorIDs = ids
	return req, nil
}

// tried_donor_ids se guarda como JSON en TEXT para no depender del mapeo de arrays.
func encodeTried(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeTried(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "[]" {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("decode tried_donor_ids: %w", err)
	}
	return ids, nil
}
