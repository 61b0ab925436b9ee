package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"furniture-production/internal/storage"
)

// upsert returns the insert-or-update statement for the current dialect.
func (s *Storage) upsert(table string, key []string, cols []string) string {
	all := append(append([]string{}, key...), cols...)

	q := "INSERT INTO " + table + " (" + strings.Join(all, ", ") + ") VALUES (" + placeholders(len(all)) + ")"

	if s.driver == DriverMySQL {
		q += " ON DUPLICATE KEY UPDATE "
		for i, c := range cols {
			if i > 0 {
				q += ", "
			}
			q += c + " = VALUES(" + c + ")"
		}
		return q
	}

	q += " ON CONFLICT (" + strings.Join(key, ", ") + ") DO UPDATE SET "
	for i, c := range cols {
		if i > 0 {
			q += ", "
		}
		q += c + " = excluded." + c
	}
	return q
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func (s *Storage) UpsertProductType(ctx context.Context, t storage.ProductType) error {
	return s.inTx(ctx, "storage.sqlstore.UpsertProductType", func(tx *sql.Tx) error {
		return s.upsertProductType(ctx, tx, t)
	})
}

func (s *Storage) UpsertMaterial(ctx context.Context, m storage.Material) error {
	return s.inTx(ctx, "storage.sqlstore.UpsertMaterial", func(tx *sql.Tx) error {
		return s.upsertMaterial(ctx, tx, m)
	})
}

func (s *Storage) UpsertWorkshop(ctx context.Context, w storage.Workshop) error {
	return s.inTx(ctx, "storage.sqlstore.UpsertWorkshop", func(tx *sql.Tx) error {
		return s.upsertWorkshop(ctx, tx, w)
	})
}

// UpsertProductWorkshop sets the hours a product (by name) spends in a workshop.
func (s *Storage) UpsertProductWorkshop(ctx context.Context, pw storage.ProductWorkshop) error {
	return s.inTx(ctx, "storage.sqlstore.UpsertProductWorkshop", func(tx *sql.Tx) error {
		return s.upsertProductWorkshop(ctx, tx, pw)
	})
}

// Import writes the whole batch in one transaction: dictionaries first,
// then products (matched by name), then workshop assignments.
func (s *Storage) Import(ctx context.Context, batch storage.ImportBatch) (storage.ImportResult, error) {
	var res storage.ImportResult

	err := s.inTx(ctx, "storage.sqlstore.Import", func(tx *sql.Tx) error {
		for _, t := range batch.ProductTypes {
			if err := s.upsertProductType(ctx, tx, t); err != nil {
				return err
			}
			res.ProductTypes++
		}
		for _, m := range batch.Materials {
			if err := s.upsertMaterial(ctx, tx, m); err != nil {
				return err
			}
			res.Materials++
		}
		for _, w := range batch.Workshops {
			if err := s.upsertWorkshop(ctx, tx, w); err != nil {
				return err
			}
			res.Workshops++
		}
		for _, p := range batch.Products {
			if err := s.upsertProduct(ctx, tx, p); err != nil {
				return err
			}
			res.Products++
		}
		for _, pw := range batch.ProductWorkshops {
			if err := s.upsertProductWorkshop(ctx, tx, pw); err != nil {
				return err
			}
			res.ProductWorkshops++
		}
		return nil
	})
	if err != nil {
		return storage.ImportResult{}, err
	}

	return res, nil
}

func (s *Storage) inTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit transaction: %w", op, classify(err))
	}

	return nil
}

func (s *Storage) upsertProductType(ctx context.Context, tx *sql.Tx, t storage.ProductType) error {
	q := s.upsert("product_types", []string{"product_type_name"}, []string{"type_coefficient"})
	if _, err := tx.ExecContext(ctx, q, t.Name, t.Coefficient); err != nil {
		return fmt.Errorf("product type %q: %w", t.Name, classify(err))
	}
	return nil
}

func (s *Storage) upsertMaterial(ctx context.Context, tx *sql.Tx, m storage.Material) error {
	q := s.upsert("materials", []string{"material_name"}, []string{"loss_percentage"})
	if _, err := tx.ExecContext(ctx, q, m.Name, m.LossPercentage); err != nil {
		return fmt.Errorf("material %q: %w", m.Name, classify(err))
	}
	return nil
}

func (s *Storage) upsertWorkshop(ctx context.Context, tx *sql.Tx, w storage.Workshop) error {
	q := s.upsert("workshops", []string{"workshop_name"}, []string{"workshop_type", "num_employees"})
	if _, err := tx.ExecContext(ctx, q, w.Name, w.Type, w.NumEmployees); err != nil {
		return fmt.Errorf("workshop %q: %w", w.Name, classify(err))
	}
	return nil
}

func (s *Storage) upsertProduct(ctx context.Context, tx *sql.Tx, p storage.ProductInput) error {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT product_id FROM products WHERE product_name = ?`, p.Name).Scan(&id)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx, `
			INSERT INTO products (product_name, article, min_partner_cost, product_type_name, main_material_name)
			VALUES (?, ?, ?, ?, ?)`,
			p.Name, p.Article, p.MinPartnerCost, p.ProductTypeName, p.MainMaterialName,
		)
	case err == nil:
		_, err = tx.ExecContext(ctx, `
			UPDATE products
			SET article = ?, min_partner_cost = ?, product_type_name = ?, main_material_name = ?
			WHERE product_id = ?`,
			p.Article, p.MinPartnerCost, p.ProductTypeName, p.MainMaterialName, id,
		)
	}
	if err != nil {
		return fmt.Errorf("product %q: %w", p.Name, classify(err))
	}

	return nil
}

func (s *Storage) upsertProductWorkshop(ctx context.Context, tx *sql.Tx, pw storage.ProductWorkshop) error {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT product_id FROM products WHERE product_name = ?`, pw.ProductName).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("product %q: %w", pw.ProductName, storage.ErrUnknownReference)
		}
		return fmt.Errorf("product %q: %w", pw.ProductName, err)
	}

	q := s.upsert("product_workshops", []string{"product_id", "workshop_name"}, []string{"coefficient"})
	if _, err := tx.ExecContext(ctx, q, id, pw.WorkshopName, pw.Coefficient); err != nil {
		return fmt.Errorf("product %q workshop %q: %w", pw.ProductName, pw.WorkshopName, classify(err))
	}

	return nil
}
