package postgres

import (
	"context"
	"database/sql"

	"blood-donor-network/internal/domain/responses"
)

type ResponsesRepo struct {
	db *sql.DB
}

func NewResponsesRepo(db *sql.DB) *ResponsesRepo {
	return &ResponsesRepo{db: db}
}

func (r *ResponsesRepo) Create(ctx context.Context, resp responses.DonorResponse) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO donor_responses (id, request_id, donor_id, status, response_time)
		VALUES ($1,$2,$3,$4,$5)
	`,
		resp.ID,
		resp.RequestID,
		resp.DonorID,
		string(resp.Status),
		resp.ResponseTime,
	)
	return err
}

func (r *ResponsesRepo) ListByRequest(ctx context.Context, requestID string) ([]responses.DonorResponse, error) {
	return r.list(ctx, `WHERE request_id = $1`, requestID)
}

func (r *ResponsesRepo) ListByDonor(ctx context.Context, donorID string) ([]responses.DonorResponse, error) {
	return r.list(ctx, `WHERE donor_id = $1`, donorID)
}

func (r *ResponsesRepo) list(ctx context.Context, where string, arg string) ([]responses.DonorResponse, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, request_id, donor_id, status, response_time
		FROM donor_responses
		`+where+`
		ORDER BY seq ASC
	`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]responses.DonorResponse, 0)
	for rows.Next() {
		var (
			resp responses.DonorResponse
			st   string
		)
		if err := rows.Scan(&resp.ID, &resp.RequestID, &resp.DonorID, &st, &resp.ResponseTime); err != nil {
			return nil, err
		}
		resp.Status = responses.Status(st)
		out = append(out, resp)
	}
	return out, rows.Err()
}
