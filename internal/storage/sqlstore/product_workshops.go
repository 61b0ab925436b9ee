package sqlstore

import (
	"context"
	"fmt"

	"furniture-production/internal/storage"
)

func (s *Storage) ListProductWorkshops(ctx context.Context) ([]storage.ProductWorkshop, error) {
	const op = "storage.sqlstore.ListProductWorkshops"

	rows, err := s.db.QueryContext(ctx, `
		SELECT p.product_name, pw.workshop_name, pw.coefficient
		FROM product_workshops pw
		JOIN products p ON p.product_id = pw.product_id
		ORDER BY p.product_id, pw.workshop_name`)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query product workshops: %w", op, err)
	}
	defer rows.Close()

	list := []storage.ProductWorkshop{}
	for rows.Next() {
		var pw storage.ProductWorkshop
		if err := rows.Scan(&pw.ProductName, &pw.WorkshopName, &pw.Coefficient); err != nil {
			return nil, fmt.Errorf("%s: failed to scan product workshop: %w", op, err)
		}
		list = append(list, pw)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration: %w", op, err)
	}

	return list, nil
}

func (s *Storage) ListProductWorkshopsByProduct(ctx context.Context, productID int64) ([]storage.ProductWorkshop, error) {
	const op = "storage.sqlstore.ListProductWorkshopsByProduct"

	p, err := getProduct(ctx, s.db, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT workshop_name, coefficient
		FROM product_workshops
		WHERE product_id = ?
		ORDER BY workshop_name`, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query workshops of product id=%d: %w", op, productID, err)
	}
	defer rows.Close()

	list := []storage.ProductWorkshop{}
	for rows.Next() {
		pw := storage.ProductWorkshop{ProductName: p.Name}
		if err := rows.Scan(&pw.WorkshopName, &pw.Coefficient); err != nil {
			return nil, fmt.Errorf("%s: failed to scan product workshop: %w", op, err)
		}
		list = append(list, pw)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration: %w", op, err)
	}

	return list, nil
}

// ListWorkshopsForProduct returns each workshop of the product with the hours spent there.
func (s *Storage) ListWorkshopsForProduct(ctx context.Context, productID int64) ([]storage.ProductWorkshopDetail, error) {
	const op = "storage.sqlstore.ListWorkshopsForProduct"

	if _, err := getProduct(ctx, s.db, productID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT w.workshop_name, w.workshop_type, w.num_employees, pw.coefficient
		FROM product_workshops pw
		JOIN workshops w ON w.workshop_name = pw.workshop_name
		WHERE pw.product_id = ?
		ORDER BY w.workshop_name`, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query workshops of product id=%d: %w", op, productID, err)
	}
	defer rows.Close()

	list := []storage.ProductWorkshopDetail{}
	for rows.Next() {
		var d storage.ProductWorkshopDetail
		if err := rows.Scan(&d.WorkshopName, &d.WorkshopType, &d.NumEmployees, &d.TimeInWorkshop); err != nil {
			return nil, fmt.Errorf("%s: failed to scan workshop: %w", op, err)
		}
		list = append(list, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration: %w", op, err)
	}

	return list, nil
}

// ProductCoefficients returns the workshop hours of one product.
func (s *Storage) ProductCoefficients(ctx context.Context, productID int64) ([]float64, error) {
	const op = "storage.sqlstore.ProductCoefficients"

	rows, err := s.db.QueryContext(ctx, `SELECT coefficient FROM product_workshops WHERE product_id = ?`, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query coefficients of product id=%d: %w", op, productID, err)
	}
	defer rows.Close()

	var coefs []float64
	for rows.Next() {
		var c float64
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("%s: failed to scan coefficient: %w", op, err)
		}
		coefs = append(coefs, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration: %w", op, err)
	}

	return coefs, nil
}

// AllCoefficients returns workshop hours grouped by product id.
func (s *Storage) AllCoefficients(ctx context.Context) (map[int64][]float64, error) {
	const op = "storage.sqlstore.AllCoefficients"

	rows, err := s.db.QueryContext(ctx, `SELECT product_id, coefficient FROM product_workshops`)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query coefficients: %w", op, err)
	}
	defer rows.Close()

	byProduct := make(map[int64][]float64)
	for rows.Next() {
		var (
			id int64
			c  float64
		)
		if err := rows.Scan(&id, &c); err != nil {
			return nil, fmt.Errorf("%s: failed to scan coefficient: %w", op, err)
		}
		byProduct[id] = append(byProduct[id], c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration: %w", op, err)
	}

	return byProduct, nil
}
