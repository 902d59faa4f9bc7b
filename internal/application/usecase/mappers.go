package usecase

import (
	"encoding/json"

	"github.com/jhoicas/Holding-api/internal/application/dto"
	"github.com/jhoicas/Holding-api/internal/domain/entity"
)

func toFirmResponse(f *entity.Firm) dto.FirmResponse {
	return dto.FirmResponse{
		ID:         f.ID,
		Slug:       f.Slug,
		Name:       f.Name,
		Logo:       f.Logo,
		ThemeColor: f.ThemeColor,
		HoldingID:  f.HoldingID,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}

func toHoldingResponse(h *entity.Holding) dto.HoldingResponse {
	return dto.HoldingResponse{ID: h.ID, Name: h.Name, Description: h.Description, CreatedAt: h.CreatedAt}
}

func rolesToStrings(roles []entity.Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, string(r))
	}
	return out
}

func toModuleResponse(m *entity.Module) dto.ModuleResponse {
	routes := make([]dto.ModuleRouteDTO, 0, len(m.Routes))
	for _, r := range m.Routes {
		routes = append(routes, dto.ModuleRouteDTO{
			Path: r.Path, Name: r.Name, Icon: r.Icon, RequiredRoles: rolesToStrings(r.RequiredRoles),
		})
	}
	permitted := m.PermittedRoles
	if len(permitted) == 0 {
		permitted = entity.AllRoles()
	}
	return dto.ModuleResponse{
		ID:             m.ID,
		Slug:           m.Slug,
		Name:           m.Name,
		Description:    m.Description,
		Version:        m.Version,
		BasePath:       m.BasePath,
		Icon:           m.Icon,
		IsSystem:       m.IsSystem,
		IsActive:       m.IsActive,
		PermittedRoles: rolesToStrings(permitted),
		Routes:         routes,
		CreatedAt:      m.CreatedAt,
	}
}

func toFirmModuleResponse(fm *entity.FirmModule) dto.FirmModuleResponse {
	settings := fm.Settings
	if len(settings) == 0 {
		settings = json.RawMessage(`{}`)
	}
	out := dto.FirmModuleResponse{
		ID:          fm.ID,
		FirmID:      fm.FirmID,
		ModuleID:    fm.ModuleID,
		IsEnabled:   fm.IsEnabled,
		Settings:    settings,
		InstalledBy: fm.InstalledBy,
		InstalledAt: fm.InstalledAt,
		UpdatedAt:   fm.UpdatedAt,
	}
	if fm.Module != nil {
		m := toModuleResponse(fm.Module)
		out.Module = &m
	}
	return out
}

func toAuditLogResponse(a *entity.AuditLog) dto.AuditLogResponse {
	out := dto.AuditLogResponse{
		ID:        a.ID,
		ActorID:   a.ActorID,
		Action:    a.Action,
		Entity:    a.Entity,
		EntityID:  a.EntityID,
		CreatedAt: a.CreatedAt,
	}
	if len(a.Metadata) > 0 {
		_ = json.Unmarshal(a.Metadata, &out.Metadata)
	}
	return out
}

func toDepartmentResponse(d *entity.Department) dto.DepartmentResponse {
	return dto.DepartmentResponse{ID: d.ID, Name: d.Name, Description: d.Description, CreatedAt: d.CreatedAt}
}

func toEmployeeResponse(e *entity.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:           e.ID,
		FirmID:       e.FirmID,
		DepartmentID: e.DepartmentID,
		Matricule:    e.Matricule,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		Phone:        e.Phone,
		Position:     e.Position,
		Salary:       e.Salary,
		HireDate:     formatDate(e.HireDate),
		Status:       e.Status,
		CreatedAt:    e.CreatedAt,
	}
}

func toContractResponse(c *entity.Contract) dto.ContractResponse {
	out := dto.ContractResponse{
		ID:                c.ID,
		EmployeeID:        c.EmployeeID,
		Type:              c.Type,
		StartDate:         formatDate(c.StartDate),
		Salary:            c.Salary,
		Status:            c.Status,
		TerminatedAt:      c.TerminatedAt,
		TerminationReason: c.TerminationReason,
		CreatedAt:         c.CreatedAt,
	}
	if c.EndDate != nil {
		end := formatDate(*c.EndDate)
		out.EndDate = &end
	}
	return out
}

func toTransferResponse(t *entity.Transfer) dto.TransferResponse {
	return dto.TransferResponse{
		ID:          t.ID,
		EmployeeID:  t.EmployeeID,
		FromFirmID:  t.FromFirmID,
		ToFirmID:    t.ToFirmID,
		Status:      t.Status,
		Reason:      t.Reason,
		RequestedBy: t.RequestedBy,
		DecidedBy:   t.DecidedBy,
		DecidedAt:   t.DecidedAt,
		CreatedAt:   t.CreatedAt,
	}
}

func toClientResponse(c *entity.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
