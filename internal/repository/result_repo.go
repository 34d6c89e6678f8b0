package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"nail-llm/internal/domain"
)

// ResultRepository archiva los resultados finalizados para diagnostico
// y seguimiento del salon. Es opcional: sin DATABASE_URL no se archiva nada.
type ResultRepository interface {
	Save(ctx context.Context, rec domain.ResultRecord) error
	FindRecent(ctx context.Context, limit int) ([]domain.ResultRecord, error)
}

type PgResultRepository struct {
	pool *pgxpool.Pool
}

func NewPgResultRepository(pool *pgxpool.Pool) *PgResultRepository {
	return &PgResultRepository{pool: pool}
}

func (r *PgResultRepository) Save(ctx context.Context, rec domain.ResultRecord) error {
	const query = `
		INSERT INTO makeup_results (id, candidate_id, concept, plan_text, top_types, specificity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	topTypes, err := json.Marshal(rec.TopTypes)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, query,
		rec.ID,
		rec.CandidateID,
		rec.Concept,
		rec.PlanText,
		topTypes,
		rec.Specificity,
		rec.CreatedAt,
	)
	return err
}

func (r *PgResultRepository) FindRecent(ctx context.Context, limit int) ([]domain.ResultRecord, error) {
	const query = `
		SELECT id, candidate_id, concept, plan_text, top_types, specificity, created_at
		FROM makeup_results
		ORDER BY created_at DESC
		LIMIT $1
	`

	if limit <= 0 {
		limit = 20
	}

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.ResultRecord
	for rows.Next() {
		var rec domain.ResultRecord
		var topTypes []byte
		if err := rows.Scan(&rec.ID, &rec.CandidateID, &rec.Concept, &rec.PlanText, &topTypes, &rec.Specificity, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if len(topTypes) > 0 {
			if err := json.Unmarshal(topTypes, &rec.TopTypes); err != nil {
				return nil, err
			}
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
