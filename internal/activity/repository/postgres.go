package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-commission-service/internal/activity/dto"
	"github.com/fekuna/omnipos-commission-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Record(ctx context.Context, entry *model.ActivityLog) error {
	query := `
        INSERT INTO activity_logs (id, actor_id, action, details, created_at)
        VALUES (:id, :actor_id, :action, CAST(:details AS jsonb), :created_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, entry)
	return err
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ActivityFilters) ([]model.ActivityLog, int, error) {
	var logs []model.ActivityLog
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.ActorID != "" {
		conditions = append(conditions, "actor_id = :actor_id")
		args["actor_id"] = f.ActorID
	}
	if f.Action != "" {
		conditions = append(conditions, "action = :action")
		args["action"] = f.Action
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM activity_logs" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, err
		}
	}

	query := "SELECT id, actor_id, action, CAST(details AS text) AS details, created_at FROM activity_logs" +
		whereClause + " ORDER BY created_at DESC, id"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &logs, args)
	return logs, count, err
}
