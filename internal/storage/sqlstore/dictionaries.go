package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"furniture-production/internal/storage"
)

func (s *Storage) ListProductTypes(ctx context.Context) ([]storage.ProductType, error) {
	const op = "storage.sqlstore.ListProductTypes"

	rows, err := s.db.QueryContext(ctx, `SELECT product_type_name, type_coefficient FROM product_types ORDER BY product_type_name`)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query product types: %w", op, err)
	}
	defer rows.Close()

	types := []storage.ProductType{}
	for rows.Next() {
		var t storage.ProductType
		if err := rows.Scan(&t.Name, &t.Coefficient); err != nil {
			return nil, fmt.Errorf("%s: failed to scan product type: %w", op, err)
		}
		types = append(types, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration: %w", op, err)
	}

	return types, nil
}

func (s *Storage) ListMaterials(ctx context.Context) ([]storage.Material, error) {
	const op = "storage.sqlstore.ListMaterials"

	rows, err := s.db.QueryContext(ctx, `SELECT material_name, loss_percentage FROM materials ORDER BY material_name`)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query materials: %w", op, err)
	}
	defer rows.Close()

	materials := []storage.Material{}
	for rows.Next() {
		var m storage.Material
		if err := rows.Scan(&m.Name, &m.LossPercentage); err != nil {
			return nil, fmt.Errorf("%s: failed to scan material: %w", op, err)
		}
		materials = append(materials, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration: %w", op, err)
	}

	return materials, nil
}

func (s *Storage) ListWorkshops(ctx context.Context) ([]storage.Workshop, error) {
	const op = "storage.sqlstore.ListWorkshops"

	rows, err := s.db.QueryContext(ctx, `SELECT workshop_name, workshop_type, num_employees FROM workshops ORDER BY workshop_name`)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query workshops: %w", op, err)
	}
	defer rows.Close()

	workshops := []storage.Workshop{}
	for rows.Next() {
		var w storage.Workshop
		if err := rows.Scan(&w.Name, &w.Type, &w.NumEmployees); err != nil {
			return nil, fmt.Errorf("%s: failed to scan workshop: %w", op, err)
		}
		workshops = append(workshops, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration: %w", op, err)
	}

	return workshops, nil
}

func (s *Storage) GetProductType(ctx context.Context, name string) (*storage.ProductType, error) {
	const op = "storage.sqlstore.GetProductType"

	var t storage.ProductType
	err := s.db.QueryRowContext(ctx,
		`SELECT product_type_name, type_coefficient FROM product_types WHERE product_type_name = ?`, name,
	).Scan(&t.Name, &t.Coefficient)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: product type %q: %w", op, name, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: product type %q: %w", op, name, err)
	}

	return &t, nil
}

func (s *Storage) GetMaterial(ctx context.Context, name string) (*storage.Material, error) {
	const op = "storage.sqlstore.GetMaterial"

	var m storage.Material
	err := s.db.QueryRowContext(ctx,
		`SELECT material_name, loss_percentage FROM materials WHERE material_name = ?`, name,
	).Scan(&m.Name, &m.LossPercentage)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: material %q: %w", op, name, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: material %q: %w", op, name, err)
	}

	return &m, nil
}

// DeleteWorkshop refuses to remove a workshop that any product still passes through.
func (s *Storage) DeleteWorkshop(ctx context.Context, name string) error {
	const op = "storage.sqlstore.DeleteWorkshop"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	var refs int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM product_workshops WHERE workshop_name = ?`, name).Scan(&refs)
	if err != nil {
		return fmt.Errorf("%s: count references of workshop %q: %w", op, name, err)
	}
	if refs > 0 {
		return fmt.Errorf("%s: workshop %q used by %d products: %w", op, name, refs, storage.ErrReferenced)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM workshops WHERE workshop_name = ?`, name)
	if err != nil {
		return fmt.Errorf("%s: delete workshop %q: %w", op, name, classifyDelete(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: workshop %q: %w", op, name, storage.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}
