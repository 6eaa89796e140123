package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-commission-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Salesperson, error) {
	var sp model.Salesperson
	query := `SELECT id, name, manager_id FROM salespeople WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &sp, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &sp, nil
}

func (r *PGRepository) FindTeam(ctx context.Context, managerID string) ([]model.Salesperson, error) {
	query := `
        SELECT id, name, manager_id
        FROM salespeople
        WHERE id = $1 OR manager_id = $1
        ORDER BY (id = $1) DESC, name, id`

	var team []model.Salesperson
	err := r.DB.SelectContext(ctx, &team, query, managerID)
	return team, err
}
