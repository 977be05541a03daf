package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.WeightLotRepository = (*WeightLotRepo)(nil)

// WeightLotRepo implementación sobre PostgreSQL (usable con pool o tx).
type WeightLotRepo struct {
	q Querier
}

// NewWeightLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWeightLotRepository(q Querier) *WeightLotRepo {
	return &WeightLotRepo{q: q}
}

const lotColumns = "id, product_id, initial_weight, available_weight, price_per_kg, expires_at, active, created_at, updated_at"

// Create persiste un lote nuevo.
func (r *WeightLotRepo) Create(lot *entity.WeightLot) error {
	query := `
		INSERT INTO weight_lots (` + lotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.ProductID, lot.InitialWeight, lot.AvailableWeight,
		lot.PricePerKg, lot.ExpiresAt, lot.Active, lot.CreatedAt, lot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create weight lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID. Devuelve (nil, nil) si no existe.
func (r *WeightLotRepo) GetByID(id string) (*entity.WeightLot, error) {
	query := `SELECT ` + lotColumns + ` FROM weight_lots WHERE id = $1`
	l, err := scanWeightLot(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get weight lot: %w", err)
	}
	return l, nil
}

// GetForUpdate obtiene el lote y bloquea la fila (SELECT FOR UPDATE).
func (r *WeightLotRepo) GetForUpdate(id string) (*entity.WeightLot, error) {
	query := `SELECT ` + lotColumns + ` FROM weight_lots WHERE id = $1 FOR UPDATE`
	l, err := scanWeightLot(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get weight lot for update: %w", err)
	}
	return l, nil
}

// Update actualiza los campos editables. Los contadores de peso no se tocan por aquí.
func (r *WeightLotRepo) Update(lot *entity.WeightLot) error {
	query := `
		UPDATE weight_lots
		SET price_per_kg = $2, expires_at = $3, active = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.PricePerKg, lot.ExpiresAt, lot.Active, lot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update weight lot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateWeights escribe los contadores de peso y el flag activo.
func (r *WeightLotRepo) UpdateWeights(id string, initial, available decimal.Decimal, active bool) error {
	query := `
		UPDATE weight_lots
		SET initial_weight = $2, available_weight = $3, active = $4, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, initial, available, active)
	if err != nil {
		return fmt.Errorf("update weight lot weights: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un lote por ID.
func (r *WeightLotRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM weight_lots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete weight lot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista lotes aplicando los filtros. Los predicados de vencimiento se
// evalúan contra filter.Now.
func (r *WeightLotRepo) List(filter repository.LotFilter) ([]*entity.WeightLot, error) {
	query := `SELECT ` + lotColumns + ` FROM weight_lots WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.ActiveOnly {
		query += " AND active = true"
	}
	if filter.AvailableOnly {
		query += " AND available_weight > 0"
	}
	if filter.ExpiredOnly {
		query += fmt.Sprintf(" AND expires_at IS NOT NULL AND expires_at < $%d", pos)
		args = append(args, filter.Now)
		pos++
	}
	if filter.ExpiringSoon {
		query += fmt.Sprintf(" AND expires_at IS NOT NULL AND expires_at >= $%d AND expires_at < $%d", pos, pos+1)
		args = append(args, filter.Now, filter.Now.AddDate(0, 0, 7))
		pos += 2
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list weight lots: %w", err)
	}
	defer rows.Close()
	var list []*entity.WeightLot
	for rows.Next() {
		l, err := scanWeightLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan weight lot: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// HasSaleItems reporta si alguna línea de venta referencia el lote.
func (r *WeightLotRepo) HasSaleItems(id string) (bool, error) {
	return r.exists(`SELECT EXISTS (SELECT 1 FROM sale_items WHERE item_kind = 'weight_lot' AND item_id = $1)`, id)
}

// HasMovements reporta si algún movimiento del diario referencia el lote.
func (r *WeightLotRepo) HasMovements(id string) (bool, error) {
	return r.exists(`SELECT EXISTS (SELECT 1 FROM inventory_movements WHERE item_kind = 'weight_lot' AND item_id = $1)`, id)
}

func (r *WeightLotRepo) exists(query, id string) (bool, error) {
	var has bool
	if err := r.q.QueryRow(context.Background(), query, id).Scan(&has); err != nil {
		return false, fmt.Errorf("weight lot exists check: %w", err)
	}
	return has, nil
}

func scanWeightLot(row pgx.Row) (*entity.WeightLot, error) {
	var l entity.WeightLot
	err := row.Scan(
		&l.ID, &l.ProductID, &l.InitialWeight, &l.AvailableWeight,
		&l.PricePerKg, &l.ExpiresAt, &l.Active, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
