package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Holding-api/internal/domain"
)

// Querier lo comparten *pgxpool.Pool y pgx.Tx: los repos funcionan igual dentro y fuera de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

type rowScanner interface {
	Scan(dest ...any) error
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// conflictOr traduce 23505 a domain.ErrConflict; el resto se envuelve con el contexto dado.
func conflictOr(err error, conflictMsg, wrap string) error {
	if isUniqueViolation(err) {
		return domain.Conflict("%s", conflictMsg)
	}
	return fmt.Errorf("%s: %w", wrap, err)
}

// validID evita que un id mal formado llegue a una columna UUID (error 22P02 = 500).
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// jsonArg pasa un json.RawMessage a una columna JSONB; vacío = NULL.
func jsonArg(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

func noRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
