package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Holding-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepos construye todos los repositorios sobre q (pool o tx).
func NewRepos(q Querier) repository.TxRepos {
	return repository.TxRepos{
		Holdings:    NewHoldingRepository(q),
		Firms:       NewFirmRepository(q),
		Users:       NewUserRepository(q),
		Members:     NewUserFirmRepository(q),
		Modules:     NewModuleRepository(q),
		FirmModules: NewFirmModuleRepository(q),
		Audit:       NewAuditLogRepository(q),
		Departments: NewDepartmentRepository(q),
		Employees:   NewEmployeeRepository(q),
		Contracts:   NewContractRepository(q),
		Transfers:   NewTransferRepository(q),
		Clients:     NewClientRepository(q),
	}
}
