package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Holding-api/internal/application/dto"
	"github.com/jhoicas/Holding-api/internal/application/usecase"
)

// HRHandler rutas del módulo de RR.HH.; todas pasan por el gate con el módulo hr.
type HRHandler struct {
	departments *usecase.DepartmentUseCase
	employees   *usecase.EmployeeUseCase
	contracts   *usecase.ContractUseCase
	transfers   *usecase.TransferUseCase
}

// NewHRHandler construye el handler.
func NewHRHandler(
	departments *usecase.DepartmentUseCase,
	employees *usecase.EmployeeUseCase,
	contracts *usecase.ContractUseCase,
	transfers *usecase.TransferUseCase,
) *HRHandler {
	return &HRHandler{departments: departments, employees: employees, contracts: contracts, transfers: transfers}
}

// ListDepartments godoc
// @Summary      Departamentos
// @Tags         hr
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID o slug de la firma"
// @Success      200  {array}  dto.DepartmentResponse
// @Router       /firms/{id}/hr/departments [get]
func (h *HRHandler) ListDepartments(c *fiber.Ctx) error {
	out, err := h.departments.List(c.UserContext(), actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateDepartment godoc
// @Summary      Crear departamento
// @Tags         hr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID o slug de la firma"
// @Param        body  body  dto.CreateDepartmentRequest  true  "Datos"
// @Success      201   {object}  dto.DepartmentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /firms/{id}/hr/departments [post]
func (h *HRHandler) CreateDepartment(c *fiber.Ctx) error {
	var in dto.CreateDepartmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.departments.Create(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListEmployees godoc
// @Summary      Empleados
// @Tags         hr
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID o slug de la firma"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.EmployeeListResponse
// @Router       /firms/{id}/hr/employees [get]
func (h *HRHandler) ListEmployees(c *fiber.Ctx) error {
	out, err := h.employees.List(c.UserContext(), actorFrom(c), pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateEmployee godoc
// @Summary      Crear empleado
// @Tags         hr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID o slug de la firma"
// @Param        body  body  dto.CreateEmployeeRequest  true  "Datos"
// @Success      201   {object}  dto.EmployeeResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /firms/{id}/hr/employees [post]
func (h *HRHandler) CreateEmployee(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.employees.Create(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetEmployee godoc
// @Summary      Obtener empleado
// @Tags         hr
// @Security     Bearer
// @Produce      json
// @Param        id          path  string  true  "ID o slug de la firma"
// @Param        employeeId  path  string  true  "ID del empleado"
// @Success      200         {object}  dto.EmployeeResponse
// @Failure      404         {object}  dto.ErrorResponse
// @Router       /firms/{id}/hr/employees/{employeeId} [get]
func (h *HRHandler) GetEmployee(c *fiber.Ctx) error {
	out, err := h.employees.Get(c.UserContext(), actorFrom(c), c.Params("employeeId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ImportEmployees godoc
// @Summary      Importación masiva atómica de empleados
// @Description  Todas las filas se crean juntas; una matrícula repetida rechaza el lote completo.
// @Tags         hr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID o slug de la firma"
// @Param        body  body  dto.ImportEmployeesRequest  true  "Empleados"
// @Success      201   {object}  dto.ImportEmployeesResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /firms/{id}/hr/employees/import [post]
func (h *HRHandler) ImportEmployees(c *fiber.Ctx) error {
	var in dto.ImportEmployeesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.employees.Import(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListContracts godoc
// @Summary      Contratos
// @Tags         hr
// @Security     Bearer
// @Produce      json
// @Param        id          path   string  true   "ID o slug de la firma"
// @Param        employeeId  query  string  false  "Filtrar por empleado"
// @Success      200         {array}  dto.ContractResponse
// @Router       /firms/{id}/hr/contracts [get]
func (h *HRHandler) ListContracts(c *fiber.Ctx) error {
	out, err := h.contracts.List(c.UserContext(), actorFrom(c), c.Query("employeeId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateContract godoc
// @Summary      Crear contrato
// @Tags         hr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID o slug de la firma"
// @Param        body  body  dto.CreateContractRequest  true  "Datos"
// @Success      201   {object}  dto.ContractResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /firms/{id}/hr/contracts [post]
func (h *HRHandler) CreateContract(c *fiber.Ctx) error {
	var in dto.CreateContractRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.contracts.Create(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// TerminateContract godoc
// @Summary      Terminar contrato
// @Tags         hr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id          path  string                        true  "ID o slug de la firma"
// @Param        contractId  path  string                        true  "ID del contrato"
// @Param        body        body  dto.TerminateContractRequest  true  "Motivo"
// @Success      200         {object}  dto.ContractResponse
// @Failure      409         {object}  dto.ErrorResponse
// @Router       /firms/{id}/hr/contracts/{contractId}/terminate [post]
func (h *HRHandler) TerminateContract(c *fiber.Ctx) error {
	var in dto.TerminateContractRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.contracts.Terminate(c.UserContext(), actorFrom(c), c.Params("contractId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListTransfers godoc
// @Summary      Traslados donde la firma es origen o destino
// @Tags         hr
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID o slug de la firma"
// @Success      200  {array}  dto.TransferResponse
// @Router       /firms/{id}/hr/transfers [get]
func (h *HRHandler) ListTransfers(c *fiber.Ctx) error {
	out, err := h.transfers.List(c.UserContext(), actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RequestTransfer godoc
// @Summary      Solicitar traslado a otra firma del holding
// @Tags         hr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID o slug de la firma origen"
// @Param        body  body  dto.RequestTransferRequest  true  "Empleado y firma destino"
// @Success      201   {object}  dto.TransferResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /firms/{id}/hr/transfers [post]
func (h *HRHandler) RequestTransfer(c *fiber.Ctx) error {
	var in dto.RequestTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.transfers.Request(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ApproveTransfer godoc
// @Summary      Aprobar traslado (firma destino)
// @Tags         hr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id          path  string                     true   "ID o slug de la firma destino"
// @Param        transferId  path  string                     true   "ID del traslado"
// @Param        body        body  dto.DecideTransferRequest  false  "Comentario"
// @Success      200         {object}  dto.TransferResponse
// @Failure      409         {object}  dto.ErrorResponse
// @Router       /firms/{id}/hr/transfers/{transferId}/approve [post]
func (h *HRHandler) ApproveTransfer(c *fiber.Ctx) error {
	in, err := decideBody(c)
	if err != nil {
		return badBody(c)
	}
	out, err := h.transfers.Approve(c.UserContext(), actorFrom(c), c.Params("transferId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RejectTransfer godoc
// @Summary      Rechazar traslado (firma destino)
// @Tags         hr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id          path  string                     true   "ID o slug de la firma destino"
// @Param        transferId  path  string                     true   "ID del traslado"
// @Param        body        body  dto.DecideTransferRequest  false  "Motivo"
// @Success      200         {object}  dto.TransferResponse
// @Router       /firms/{id}/hr/transfers/{transferId}/reject [post]
func (h *HRHandler) RejectTransfer(c *fiber.Ctx) error {
	in, err := decideBody(c)
	if err != nil {
		return badBody(c)
	}
	out, err := h.transfers.Reject(c.UserContext(), actorFrom(c), c.Params("transferId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// decideBody el cuerpo es opcional.
func decideBody(c *fiber.Ctx) (dto.DecideTransferRequest, error) {
	var in dto.DecideTransferRequest
	if len(c.Body()) == 0 {
		return in, nil
	}
	err := c.BodyParser(&in)
	return in, err
}
