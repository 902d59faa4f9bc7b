package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Holding-api/internal/domain/entity"
)

// Todas las lecturas llevan firmID: una fila de otra firma es invisible ((nil, nil)).

// DepartmentRepository puerto de departamentos.
type DepartmentRepository interface {
	Create(ctx context.Context, d *entity.Department) error
	GetByID(ctx context.Context, firmID, id string) (*entity.Department, error)
	ListByFirm(ctx context.Context, firmID string) ([]*entity.Department, error)
}

// EmployeeRepository puerto de empleados.
type EmployeeRepository interface {
	// Create y CreateBatch devuelven domain.ErrConflict ante matrícula repetida en la firma.
	Create(ctx context.Context, e *entity.Employee) error
	CreateBatch(ctx context.Context, list []*entity.Employee) error
	GetByID(ctx context.Context, firmID, id string) (*entity.Employee, error)
	List(ctx context.Context, firmID string, limit, offset int) ([]*entity.Employee, int, error)
	// ExistingMatricules devuelve las matrículas de la lista que ya existen en la firma.
	ExistingMatricules(ctx context.Context, firmID string, matricules []string) ([]string, error)
	Update(ctx context.Context, e *entity.Employee) error
}

// ContractRepository puerto de contratos.
type ContractRepository interface {
	Create(ctx context.Context, c *entity.Contract) error
	GetByID(ctx context.Context, firmID, id string) (*entity.Contract, error)
	// ListByFirm filtra por empleado si employeeID no es vacío.
	ListByFirm(ctx context.Context, firmID, employeeID string) ([]*entity.Contract, error)
	Update(ctx context.Context, c *entity.Contract) error
	// ListExpired contratos activos de cualquier firma con fecha de fin anterior a before.
	ListExpired(ctx context.Context, before time.Time) ([]*entity.Contract, error)
}

// TransferRepository puerto de traslados entre firmas.
type TransferRepository interface {
	Create(ctx context.Context, t *entity.Transfer) error
	GetByID(ctx context.Context, id string) (*entity.Transfer, error)
	// ListByFirm traslados donde la firma es origen o destino, más reciente primero.
	ListByFirm(ctx context.Context, firmID string) ([]*entity.Transfer, error)
	Update(ctx context.Context, t *entity.Transfer) error
	HasPending(ctx context.Context, employeeID string) (bool, error)
}
