package sqlstore

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"furniture-production/internal/storage"
)

const (
	mysqlDuplicateEntry  = 1062
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
)

// classify maps constraint errors of an INSERT or UPDATE onto storage sentinels.
// A foreign key failure there means the parent row is missing.
// Errors it does not recognise are returned unchanged.
func classify(err error) error {
	return classifyConstraint(err, storage.ErrUnknownReference)
}

// classifyDelete is classify for DELETE statements, where a foreign key failure
// means the row is still referenced.
func classifyDelete(err error) error {
	return classifyConstraint(err, storage.ErrReferenced)
}

func classifyConstraint(err error, foreignKey error) error {
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlDuplicateEntry:
			return errors.Join(storage.ErrDuplicateKey, err)
		case mysqlRowIsReferenced:
			return errors.Join(storage.ErrReferenced, err)
		case mysqlNoReferencedRow:
			return errors.Join(storage.ErrUnknownReference, err)
		}
		return err
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		switch {
		case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE, code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return errors.Join(storage.ErrDuplicateKey, err)
		case code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return errors.Join(foreignKey, err)
		case code&0xff == sqlite3.SQLITE_CONSTRAINT:
			// primary code only: fall back to the message
			msg := liteErr.Error()
			if strings.Contains(msg, "UNIQUE constraint failed") {
				return errors.Join(storage.ErrDuplicateKey, err)
			}
			if strings.Contains(msg, "FOREIGN KEY constraint failed") {
				return errors.Join(foreignKey, err)
			}
		}
	}

	return err
}
