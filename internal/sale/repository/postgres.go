package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-commission-service/internal/model"
	"github.com/fekuna/omnipos-commission-service/internal/sale/dto"
	"github.com/fekuna/omnipos-commission-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

const saleColumns = `
    s.id, s.stock_number, s.salesperson_id, s.customer_name, s.vehicle_type,
    s.sale_price, s.accessories_value, s.warranty_price, s.warranty_cost,
    s.service_price, s.service_cost, s.spiff_bonus, s.is_shared_sale,
    s.partner_id, s.split_percentage, s.status, s.version,
    s.commission_sale, s.commission_accessories, s.commission_warranty,
    s.commission_service, s.commission_spiff, s.commission_total,
    s.created_at, s.updated_at`

const updateSaleQuery = `
    UPDATE sales SET
        stock_number = :stock_number,
        customer_name = :customer_name,
        vehicle_type = :vehicle_type,
        sale_price = :sale_price,
        accessories_value = :accessories_value,
        warranty_price = :warranty_price,
        warranty_cost = :warranty_cost,
        service_price = :service_price,
        service_cost = :service_cost,
        spiff_bonus = :spiff_bonus,
        is_shared_sale = :is_shared_sale,
        partner_id = :partner_id,
        split_percentage = :split_percentage,
        status = :status,
        commission_sale = :commission_sale,
        commission_accessories = :commission_accessories,
        commission_warranty = :commission_warranty,
        commission_service = :commission_service,
        commission_spiff = :commission_spiff,
        commission_total = :commission_total,
        updated_at = :updated_at,
        version = version + 1
    WHERE id = :id AND version = :version
`

const deleteSaleQuery = `DELETE FROM sales WHERE id = $1 AND version = $2`

const insertActivityQuery = `
    INSERT INTO activity_logs (id, actor_id, action, details, created_at)
    VALUES (:id, :actor_id, :action, CAST(:details AS jsonb), :created_at)
`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, s *model.Sale) error {
	query := `
        INSERT INTO sales (
            id, stock_number, salesperson_id, customer_name, vehicle_type,
            sale_price, accessories_value, warranty_price, warranty_cost,
            service_price, service_cost, spiff_bonus, is_shared_sale,
            partner_id, split_percentage, status, version,
            commission_sale, commission_accessories, commission_warranty,
            commission_service, commission_spiff, commission_total,
            created_at, updated_at
        )
        VALUES (
            :id, :stock_number, :salesperson_id, :customer_name, :vehicle_type,
            :sale_price, :accessories_value, :warranty_price, :warranty_cost,
            :service_price, :service_cost, :spiff_bonus, :is_shared_sale,
            :partner_id, :split_percentage, :status, :version,
            :commission_sale, :commission_accessories, :commission_warranty,
            :commission_service, :commission_spiff, :commission_total,
            :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, s)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return model.ErrDuplicateEntry
		}
		return err
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Sale, error) {
	var s model.Sale
	query := `SELECT` + saleColumns + ` FROM sales s WHERE s.id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &s, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.SaleFilters) ([]model.Sale, int, error) {
	var sales []model.Sale
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.SalespersonID != "" {
		conditions = append(conditions, "s.salesperson_id = :salesperson_id")
		args["salesperson_id"] = f.SalespersonID
	}
	if f.ParticipantID != "" {
		conditions = append(conditions, "(s.salesperson_id = :participant_id OR s.partner_id = :participant_id)")
		args["participant_id"] = f.ParticipantID
	}
	if f.StockNumber != "" {
		conditions = append(conditions, "s.stock_number = :stock_number")
		args["stock_number"] = f.StockNumber
	}
	if f.Status != "" {
		conditions = append(conditions, "s.status = :status")
		args["status"] = f.Status
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM sales s" + whereClause
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

	query := "SELECT" + saleColumns + " FROM sales s" + whereClause + " ORDER BY s.created_at DESC"
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

	err = nstmt.SelectContext(ctx, &sales, args)
	return sales, count, err
}

func (r *PGRepository) Update(ctx context.Context, s *model.Sale) error {
	res, err := r.DB.NamedExecContext(ctx, updateSaleQuery, s)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return model.ErrDuplicateEntry
		}
		return err
	}
	if err := expectOneRow(res); err != nil {
		return err
	}
	s.Version++
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, s *model.Sale) error {
	res, err := r.DB.ExecContext(ctx, deleteSaleQuery, s.ID, s.Version)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *PGRepository) FindByStockNumber(ctx context.Context, stockNumber, excludeID string) ([]model.SaleWithOwner, error) {
	query := `
        SELECT` + saleColumns + `, COALESCE(u.name, '') AS salesperson_name
        FROM sales s
        LEFT JOIN salespeople u ON u.id = s.salesperson_id
        WHERE s.stock_number = $1 AND s.status <> 'cancelled'`
	args := []interface{}{stockNumber}

	if excludeID != "" {
		query += ` AND s.id <> $2`
		args = append(args, excludeID)
	}
	query += ` ORDER BY s.created_at, s.id`

	var items []model.SaleWithOwner
	err := r.DB.SelectContext(ctx, &items, query, args...)
	return items, err
}

func (r *PGRepository) FindPendingByTeam(ctx context.Context, managerID string) ([]model.SaleWithOwner, error) {
	query := `
        SELECT` + saleColumns + `, u.name AS salesperson_name
        FROM sales s
        JOIN salespeople u ON u.id = s.salesperson_id
        WHERE s.status = 'pending' AND (u.id = $1 OR u.manager_id = $1)
        ORDER BY s.created_at, s.id`

	var items []model.SaleWithOwner
	err := r.DB.SelectContext(ctx, &items, query, managerID)
	return items, err
}

// ApplyChangeSet runs every update, delete and the activity insert of a
// plan in one transaction. Any version mismatch rolls the whole plan back.
func (r *PGRepository) ApplyChangeSet(ctx context.Context, plan *model.ChangeSet) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// 1. Updates
	for _, s := range plan.Updates {
		res, err := tx.NamedExecContext(ctx, updateSaleQuery, s)
		if err != nil {
			return fmt.Errorf("failed to update sale %s: %w", s.ID, err)
		}
		if err := expectOneRow(res); err != nil {
			return fmt.Errorf("failed to update sale %s: %w", s.ID, err)
		}
	}

	// 2. Deletes
	for _, s := range plan.Deletes {
		res, err := tx.ExecContext(ctx, deleteSaleQuery, s.ID, s.Version)
		if err != nil {
			return fmt.Errorf("failed to delete sale %s: %w", s.ID, err)
		}
		if err := expectOneRow(res); err != nil {
			return fmt.Errorf("failed to delete sale %s: %w", s.ID, err)
		}
	}

	// 3. Audit
	if plan.Activity != nil {
		if _, err := tx.NamedExecContext(ctx, insertActivityQuery, plan.Activity); err != nil {
			return fmt.Errorf("failed to log activity: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	for _, s := range plan.Updates {
		s.Version++
	}
	return nil
}

func expectOneRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrVersionConflict
	}
	return nil
}
