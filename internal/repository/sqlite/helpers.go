package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/pricepulse/internal/logger"
	"github.com/vytor/pricepulse/internal/models"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// byDifficulty narrows a content query to one difficulty and keeps
// authoring order.
func byDifficulty(query squirrel.SelectBuilder, d models.Difficulty) squirrel.SelectBuilder {
	if d != models.AnyDifficulty {
		query = query.Where(squirrel.Eq{"difficulty": int(d)})
	}
	return query.OrderBy("position ASC")
}

// insertRows runs one multi-row INSERT. Nothing is executed for zero rows.
func insertRows(ctx context.Context, tx *sql.Tx, table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	query := sqlBuilder.Insert(table).Columns(columns...)
	for _, row := range rows {
		query = query.Values(row...)
	}
	stmt, args, err := query.ToSql()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, stmt, args...)
	return err
}

func tx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	log := logger.FromContext(ctx).WithPrefix("repo")
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		log.Debug("transaction rolled back due to error: %v", err)
		return err
	}
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction: %v", err)
		return err
	}
	log.Debug("transaction committed")
	return nil
}
