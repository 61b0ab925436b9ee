package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"furniture-production/internal/storage"
)

const productColumns = `product_id, product_name, article, min_partner_cost, product_type_name, main_material_name`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (storage.Product, error) {
	var (
		p        storage.Product
		typeName sql.NullString
		material sql.NullString
	)

	if err := row.Scan(&p.ID, &p.Name, &p.Article, &p.MinPartnerCost, &typeName, &material); err != nil {
		return storage.Product{}, err
	}

	p.ProductTypeName = nullableString(typeName)
	p.MainMaterialName = nullableString(material)

	return p, nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func (s *Storage) ListProducts(ctx context.Context) ([]storage.Product, error) {
	const op = "storage.sqlstore.ListProducts"

	rows, err := s.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY product_id`)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query products: %w", op, err)
	}
	defer rows.Close()

	products := []storage.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan product: %w", op, err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration: %w", op, err)
	}

	return products, nil
}

func (s *Storage) GetProduct(ctx context.Context, id int64) (*storage.Product, error) {
	const op = "storage.sqlstore.GetProduct"

	p, err := getProduct(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func getProduct(ctx context.Context, q queryer, id int64) (*storage.Product, error) {
	row := q.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE product_id = ?`, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product id=%d: %w", id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("product id=%d: %w", id, err)
	}

	return &p, nil
}

// CreateProduct inserts the product and its workshop assignments in one transaction.
// Article and name uniqueness and dictionary references are checked before the insert.
func (s *Storage) CreateProduct(ctx context.Context, in storage.ProductInput) (*storage.Product, error) {
	const op = "storage.sqlstore.CreateProduct"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	if err := checkProductInput(ctx, tx, in, 0); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO products (product_name, article, min_partner_cost, product_type_name, main_material_name)
		VALUES (?, ?, ?, ?, ?)`,
		in.Name, in.Article, in.MinPartnerCost, in.ProductTypeName, in.MainMaterialName,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: insert product %q: %w", op, in.Name, classify(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("%s: last insert id: %w", op, err)
	}

	if err := insertAssignments(ctx, tx, id, in.Workshops); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	p, err := getProduct(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: commit transaction: %w", op, classify(err))
	}

	return p, nil
}

// UpdateProduct overwrites every mutable field of the product.
// Assignments are replaced only when in.Workshops is not nil.
func (s *Storage) UpdateProduct(ctx context.Context, id int64, in storage.ProductInput) (*storage.Product, error) {
	const op = "storage.sqlstore.UpdateProduct"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	if _, err := getProduct(ctx, tx, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := checkProductInput(ctx, tx, in, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE products
		SET product_name = ?, article = ?, min_partner_cost = ?, product_type_name = ?, main_material_name = ?
		WHERE product_id = ?`,
		in.Name, in.Article, in.MinPartnerCost, in.ProductTypeName, in.MainMaterialName, id,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: update product id=%d: %w", op, id, classify(err))
	}

	if in.Workshops != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM product_workshops WHERE product_id = ?`, id); err != nil {
			return nil, fmt.Errorf("%s: clear assignments for product id=%d: %w", op, id, err)
		}
		if err := insertAssignments(ctx, tx, id, in.Workshops); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	p, err := getProduct(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: commit transaction: %w", op, classify(err))
	}

	return p, nil
}

// DeleteProduct removes the product; its workshop assignments go with it by cascade.
func (s *Storage) DeleteProduct(ctx context.Context, id int64) error {
	const op = "storage.sqlstore.DeleteProduct"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE product_id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: delete product id=%d: %w", op, id, classifyDelete(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: product id=%d: %w", op, id, storage.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}

// checkProductInput runs the uniqueness and reference checks for a write.
// excludeID is the product being updated, 0 on create.
func checkProductInput(ctx context.Context, q queryer, in storage.ProductInput, excludeID int64) error {
	var n int

	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE article = ? AND product_id <> ?`, in.Article, excludeID,
	).Scan(&n)
	if err != nil {
		return fmt.Errorf("check article: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("article %d already exists: %w", in.Article, storage.ErrDuplicateKey)
	}

	err = q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE product_name = ? AND product_id <> ?`, in.Name, excludeID,
	).Scan(&n)
	if err != nil {
		return fmt.Errorf("check product name: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("product name %q already exists: %w", in.Name, storage.ErrDuplicateKey)
	}

	if in.ProductTypeName != nil {
		if err := requireRow(ctx, q, `SELECT COUNT(*) FROM product_types WHERE product_type_name = ?`, *in.ProductTypeName); err != nil {
			return fmt.Errorf("product type %q: %w", *in.ProductTypeName, err)
		}
	}

	if in.MainMaterialName != nil {
		if err := requireRow(ctx, q, `SELECT COUNT(*) FROM materials WHERE material_name = ?`, *in.MainMaterialName); err != nil {
			return fmt.Errorf("material %q: %w", *in.MainMaterialName, err)
		}
	}

	seen := make(map[string]struct{}, len(in.Workshops))
	for _, a := range in.Workshops {
		if _, ok := seen[a.WorkshopName]; ok {
			return fmt.Errorf("workshop %q assigned twice: %w", a.WorkshopName, storage.ErrDuplicateKey)
		}
		seen[a.WorkshopName] = struct{}{}

		if err := requireRow(ctx, q, `SELECT COUNT(*) FROM workshops WHERE workshop_name = ?`, a.WorkshopName); err != nil {
			return fmt.Errorf("workshop %q: %w", a.WorkshopName, err)
		}
	}

	return nil
}

func requireRow(ctx context.Context, q queryer, query string, arg any) error {
	var n int
	if err := q.QueryRowContext(ctx, query, arg).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrUnknownReference
	}
	return nil
}

func insertAssignments(ctx context.Context, tx *sql.Tx, productID int64, assignments []storage.WorkshopAssignment) error {
	if len(assignments) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO product_workshops (product_id, workshop_name, coefficient) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare assignment insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range assignments {
		if _, err := stmt.ExecContext(ctx, productID, a.WorkshopName, a.Coefficient); err != nil {
			return fmt.Errorf("insert assignment product id=%d workshop=%q: %w", productID, a.WorkshopName, classify(err))
		}
	}

	return nil
}
