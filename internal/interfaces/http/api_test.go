package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Holding-api/internal/application/auth"
	"github.com/jhoicas/Holding-api/internal/application/gate"
	"github.com/jhoicas/Holding-api/internal/application/navigation"
	"github.com/jhoicas/Holding-api/internal/application/usecase"
	"github.com/jhoicas/Holding-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Holding-api/internal/interfaces/http"
	"github.com/jhoicas/Holding-api/internal/testutil/memstore"
	pkgjwt "github.com/jhoicas/Holding-api/pkg/jwt"
	"github.com/jhoicas/Holding-api/pkg/logger"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "holding-api-test"
)

// testAPI app completa sobre el store en memoria: firma acme con un usuario por rol,
// HR (sistema) instalado y CRM en el catálogo sin instalar.
type testAPI struct {
	app      *fiber.App
	store    *memstore.Store
	firm     *entity.Firm
	hr       *entity.Module
	crm      *entity.Module
	tokens   map[entity.Role]string
	outsider string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	s := memstore.New()
	h := s.SeedHolding("Grupo")
	api := &testAPI{store: s, tokens: map[entity.Role]string{}}
	api.firm = s.SeedFirm(h.ID, "acme", "Acme")
	api.hr = s.SeedModule(entity.Module{
		Slug: entity.ModuleHR, Name: "Recursos Humanos", IsSystem: true, IsActive: true,
		PermittedRoles: []entity.Role{entity.RoleOwner, entity.RoleAdmin, entity.RoleManager},
		Routes: []entity.ModuleRoute{
			{Path: "/employees", Name: "Empleados"},
			{Path: "/contracts", Name: "Contratos", RequiredRoles: []entity.Role{entity.RoleOwner, entity.RoleAdmin}},
		},
	})
	api.crm = s.SeedModule(entity.Module{Slug: entity.ModuleCRM, Name: "CRM", IsActive: true})
	s.SeedBinding(api.firm.ID, api.hr.ID, true)

	for _, r := range entity.AllRoles() {
		u := s.SeedUser(string(r)+"@acme.test", string(r), "")
		s.SeedMember(u.ID, api.firm.ID, r)
		api.tokens[r] = token(t, u)
	}
	api.outsider = token(t, s.SeedUser("ajeno@otra.test", "Ajeno", ""))

	log := logger.Nop()
	repos := s.Repos()
	g := gate.New(repos.Firms, repos.Members, repos.Modules, repos.FirmModules)
	authUC := auth.NewAuthUseCase(repos.Users, repos.Members, s, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer,
	})

	api.app = fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	api.app.Use(apphttp.RequestLogger(log))
	apphttp.Router(api.app, apphttp.RouterDeps{
		Sessions: authUC,
		Gate:     g,
		Auth:     apphttp.NewAuthHandler(authUC),
		Firms: apphttp.NewFirmHandler(
			usecase.NewFirmUseCase(repos.Holdings, repos.Firms, repos.Members, s, nil, usecase.UploadOptions{}),
			usecase.NewAuditUseCase(repos.Audit),
		),
		Members: apphttp.NewMemberHandler(usecase.NewMembershipUseCase(repos.Users, repos.Members, s)),
		Modules: apphttp.NewModuleHandler(
			usecase.NewModuleService(repos.Modules, repos.Members),
			usecase.NewFirmModuleUseCase(repos.FirmModules, repos.Modules, s),
		),
		Navigation: apphttp.NewNavigationHandler(g, navigation.NewComposer(repos.FirmModules, log)),
		HR: apphttp.NewHRHandler(
			usecase.NewDepartmentUseCase(repos.Departments),
			usecase.NewEmployeeUseCase(repos.Employees, repos.Departments, s),
			usecase.NewContractUseCase(repos.Contracts, repos.Employees, s, log),
			usecase.NewTransferUseCase(repos.Transfers, repos.Employees, repos.Firms, repos.FirmModules, s),
		),
		CRM: apphttp.NewCRMHandler(usecase.NewClientUseCase(repos.Clients)),
	})
	return api
}

func token(t *testing.T, u *entity.User) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, u.ID, u.Email, testIssuer, 60)
	require.NoError(t, err)
	return tok
}

// do lanza la petición y devuelve status y cuerpo crudo.
func (api *testAPI) do(t *testing.T, method, path, tok string, body any) (int, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m), string(raw))
	return m
}

func (api *testAPI) firmPath(format string, args ...any) string {
	return "/firms/" + api.firm.ID + fmt.Sprintf(format, args...)
}

func TestAuth_SinTokenResponde401(t *testing.T) {
	api := newTestAPI(t)

	status, body := api.do(t, http.MethodGet, "/modules", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apphttp.CodeUnauthenticated, decode(t, body)["code"])

	status, _ = api.do(t, http.MethodGet, api.firmPath("/modules"), "no-es-un-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAuth_RegistroLoginYMe(t *testing.T) {
	api := newTestAPI(t)

	status, _ := api.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"email": "Nuevo@Acme.test", "name": "Nuevo", "password": "secreta123",
	})
	require.Equal(t, http.StatusCreated, status)

	status, _ = api.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"email": "nuevo@acme.test", "name": "Otro", "password": "secreta123",
	})
	assert.Equal(t, http.StatusConflict, status)

	status, body := api.do(t, http.MethodPost, "/auth/register", "", map[string]any{"email": "x", "password": "corta"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, decode(t, body)["details"], "password")

	status, body = api.do(t, http.MethodPost, "/auth/login", "", map[string]any{
		"email": "nuevo@acme.test", "password": "secreta123",
	})
	require.Equal(t, http.StatusOK, status)
	tok, _ := decode(t, body)["token"].(string)
	require.NotEmpty(t, tok)

	status, _ = api.do(t, http.MethodGet, "/auth/me", tok, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = api.do(t, http.MethodPost, "/auth/login", "", map[string]any{
		"email": "nuevo@acme.test", "password": "incorrecta",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestFirmModules_CicloDeVida(t *testing.T) {
	api := newTestAPI(t)
	admin := api.tokens[entity.RoleAdmin]

	status, body := api.do(t, http.MethodPost, api.firmPath("/modules"), admin, map[string]any{
		"moduleId": "crm", "isEnabled": true, "settings": map[string]any{"pipeline": "b2b"},
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	created := decode(t, body)
	assert.Equal(t, api.crm.ID, created["moduleId"])
	assert.Equal(t, true, created["isEnabled"])

	status, _ = api.do(t, http.MethodPost, api.firmPath("/modules"), admin, map[string]any{"moduleId": api.crm.ID})
	assert.Equal(t, http.StatusConflict, status)

	status, body = api.do(t, http.MethodGet, api.firmPath("/modules"), api.tokens[entity.RoleViewer], nil)
	require.Equal(t, http.StatusOK, status)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(body, &list))
	var crm []map[string]any
	for _, b := range list {
		if b["moduleId"] == api.crm.ID {
			crm = append(crm, b)
		}
	}
	require.Len(t, crm, 1)
	assert.Equal(t, map[string]any{"pipeline": "b2b"}, crm[0]["settings"])

	status, body = api.do(t, http.MethodPatch, api.firmPath("/modules/crm"), admin, map[string]any{"isEnabled": false})
	require.Equal(t, http.StatusOK, status)
	updated := decode(t, body)
	assert.Equal(t, false, updated["isEnabled"])
	assert.Equal(t, map[string]any{"pipeline": "b2b"}, updated["settings"])

	status, body = api.do(t, http.MethodDelete, api.firmPath("/modules/crm"), admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, decode(t, body)["success"])

	status, _ = api.do(t, http.MethodDelete, api.firmPath("/modules/crm"), admin, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

// Dos instalaciones simultáneas del mismo módulo: una 201 y otra 409, un único binding.
func TestFirmModules_InstalacionConcurrente(t *testing.T) {
	api := newTestAPI(t)
	admin := api.tokens[entity.RoleAdmin]

	const n = 2
	statuses := make([]int, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, api.firmPath("/modules"), bytes.NewReader([]byte(`{"moduleId":"crm"}`)))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+admin)
			resp, err := api.app.Test(req, -1)
			if err != nil {
				errs[i] = err
				return
			}
			resp.Body.Close()
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.ElementsMatch(t, []int{http.StatusCreated, http.StatusConflict}, statuses)

	bindings, err := api.store.FirmModules.ListByFirm(context.Background(), api.firm.ID)
	require.NoError(t, err)
	var crm int
	for _, b := range bindings {
		if b.ModuleID == api.crm.ID {
			crm++
		}
	}
	assert.Equal(t, 1, crm)
}

func TestFirmModules_ModuloDesconocido404(t *testing.T) {
	api := newTestAPI(t)
	status, _ := api.do(t, http.MethodPost, api.firmPath("/modules"), api.tokens[entity.RoleOwner], map[string]any{
		"moduleId": uuid.NewString(),
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestFirmModules_StaffSiempre403(t *testing.T) {
	api := newTestAPI(t)
	staff := api.tokens[entity.RoleStaff]

	bodies := []any{
		map[string]any{"moduleId": "crm"},
		map[string]any{"moduleId": uuid.NewString()},
		map[string]any{"moduleId": "hr"},
		"no es un objeto",
	}
	for _, b := range bodies {
		status, body := api.do(t, http.MethodPost, api.firmPath("/modules"), staff, b)
		assert.Equal(t, http.StatusForbidden, status, string(body))
	}
	status, _ := api.do(t, http.MethodDelete, api.firmPath("/modules/hr"), staff, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestFirmAccess_NoMiembro(t *testing.T) {
	t.Run("firma inexistente responde igual que una ajena", func(t *testing.T) {
		api := newTestAPI(t)
		s1, b1 := api.do(t, http.MethodGet, "/firms/acme/modules", api.outsider, nil)
		s2, b2 := api.do(t, http.MethodGet, "/firms/nope/modules", api.outsider, nil)
		s3, b3 := api.do(t, http.MethodGet, "/firms/"+uuid.NewString()+"/modules", api.outsider, nil)
		assert.Equal(t, http.StatusForbidden, s1)
		assert.Equal(t, s1, s2)
		assert.Equal(t, s1, s3)
		assert.JSONEq(t, string(b1), string(b2))
		assert.JSONEq(t, string(b1), string(b3))
		assert.NotContains(t, string(b2), "no encontrada")
	})

	t.Run("slug en lugar de id", func(t *testing.T) {
		api := newTestAPI(t)
		status, _ := api.do(t, http.MethodGet, "/firms/acme/modules", api.tokens[entity.RoleViewer], nil)
		assert.Equal(t, http.StatusOK, status)
	})
}

func TestModuleRoute_StaffFueraDePermittedRoles(t *testing.T) {
	api := newTestAPI(t)

	status, body := api.do(t, http.MethodGet, api.firmPath("/hr/employees"), api.tokens[entity.RoleStaff], nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, apphttp.CodeForbidden, decode(t, body)["code"])

	status, _ = api.do(t, http.MethodGet, api.firmPath("/hr/employees"), api.tokens[entity.RoleManager], nil)
	assert.Equal(t, http.StatusOK, status)

	status, body = api.do(t, http.MethodGet, api.firmPath("/crm/clients"), api.tokens[entity.RoleOwner], nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, apphttp.CodeModuleNotInstalled, decode(t, body)["code"])
}

func TestNavigation(t *testing.T) {
	api := newTestAPI(t)
	api.store.SeedBinding(api.firm.ID, api.crm.ID, false)

	status, body := api.do(t, http.MethodGet, "/navigation?firmId=acme", api.tokens[entity.RoleManager], nil)
	require.Equal(t, http.StatusOK, status)
	nav := decodeNavigation(t, body)
	assert.Equal(t, "acme", nav.FirmSlug)
	assert.Equal(t, "MANAGER", nav.UserRole)
	assert.False(t, nav.Fallback)
	require.Len(t, nav.Navigation, 2)
	assert.Equal(t, navigation.BaseSection("acme").Title, nav.Navigation[0].Title)
	assert.Equal(t, entity.ModuleHR, nav.Navigation[1].Module)
	require.Len(t, nav.Navigation[1].Items, 1, "contratos exige OWNER/ADMIN")
	for _, s := range nav.Navigation {
		assert.NotEqual(t, entity.ModuleCRM, s.Module)
	}

	api.store.Fail("FirmModules.ListEnabledModules", errors.New("conexión perdida"))
	status, body = api.do(t, http.MethodGet, "/navigation?firmId="+api.firm.ID, api.tokens[entity.RoleManager], nil)
	require.Equal(t, http.StatusOK, status)
	nav = decodeNavigation(t, body)
	assert.True(t, nav.Fallback)
	assert.Empty(t, nav.UserRole)
	assert.Equal(t, navigation.StaticFallback("acme"), nav.Navigation)
	assert.NotContains(t, string(body), "conexión perdida")

	status, _ = api.do(t, http.MethodGet, "/navigation?firmId=acme", api.outsider, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestNavigation_AlmacenCaido(t *testing.T) {
	api := newTestAPI(t)
	outage := errors.New("dial tcp: connection refused")
	for _, op := range []string{"Firms.GetBySlug", "Firms.GetByID", "FirmModules.ListEnabledModules"} {
		api.store.Fail(op, outage)
	}

	status, body := api.do(t, http.MethodGet, "/navigation?firmId=acme", api.tokens[entity.RoleManager], nil)
	require.Equal(t, http.StatusOK, status, string(body))
	nav := decodeNavigation(t, body)
	assert.True(t, nav.Fallback)
	assert.Equal(t, "acme", nav.FirmSlug)
	assert.Empty(t, nav.UserRole)
	assert.Equal(t, navigation.StaticFallback("acme"), nav.Navigation)
	assert.NotContains(t, string(body), "connection refused")

	// Caída al leer la membresía.
	api.store.Fail("Firms.GetBySlug", nil)
	api.store.Fail("Members.Get", outage)
	status, body = api.do(t, http.MethodGet, "/navigation?firmId=acme", api.tokens[entity.RoleViewer], nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decodeNavigation(t, body).Fallback)

	// Sin sesión o sin firma no hay menú de respaldo.
	status, _ = api.do(t, http.MethodGet, "/navigation?firmId=acme", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = api.do(t, http.MethodGet, "/navigation", api.tokens[entity.RoleViewer], nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

type navigationBody struct {
	Navigation []navigation.Section `json:"navigation"`
	FirmSlug   string               `json:"firmSlug"`
	UserRole   string               `json:"userRole"`
	Fallback   bool                 `json:"fallback"`
}

func decodeNavigation(t *testing.T, raw []byte) navigationBody {
	t.Helper()
	var nav navigationBody
	require.NoError(t, json.Unmarshal(raw, &nav), string(raw))
	return nav
}

func TestImportEmployees_LoteAtomico(t *testing.T) {
	api := newTestAPI(t)
	owner := api.tokens[entity.RoleOwner]

	row := func(m string) map[string]any {
		return map[string]any{"matricule": m, "firstName": "N", "lastName": "A", "salary": "1500.50"}
	}
	status, body := api.do(t, http.MethodPost, api.firmPath("/hr/employees/import"), owner, map[string]any{
		"employees": []any{row("E1"), row("E2"), row("E3"), row("E1")},
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, decode(t, body)["message"], "E1")
	assert.Zero(t, api.store.EmployeeCount(api.firm.ID))

	status, body = api.do(t, http.MethodPost, api.firmPath("/hr/employees/import"), owner, map[string]any{
		"employees": []any{row("E1"), row("E2"), row("E3")},
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	assert.EqualValues(t, 3, decode(t, body)["imported"])

	status, _ = api.do(t, http.MethodPost, api.firmPath("/hr/employees/import"), owner, map[string]any{
		"employees": []any{row("E4"), row("E2")},
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, 3, api.store.EmployeeCount(api.firm.ID))

	status, _ = api.do(t, http.MethodPost, api.firmPath("/hr/employees/import"), api.tokens[entity.RoleManager], map[string]any{
		"employees": []any{row("E9")},
	})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestRegisterModule(t *testing.T) {
	api := newTestAPI(t)
	admin := api.tokens[entity.RoleAdmin]

	status, _ := api.do(t, http.MethodPost, "/modules", api.tokens[entity.RoleStaff], map[string]any{
		"slug": "inventario", "name": "Inventario", "basePath": "/inventario",
	})
	assert.Equal(t, http.StatusForbidden, status)

	status, body := api.do(t, http.MethodPost, "/modules", admin, map[string]any{
		"slug": "Mal Slug", "name": "X", "basePath": "/x",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, decode(t, body)["details"], "slug")

	status, _ = api.do(t, http.MethodPost, "/modules", admin, map[string]any{
		"slug": "inventario", "name": "Inventario", "basePath": "/inventario",
	})
	assert.Equal(t, http.StatusCreated, status)

	status, _ = api.do(t, http.MethodPost, "/modules", admin, map[string]any{
		"slug": "inventario", "name": "Otro", "basePath": "/otro",
	})
	assert.Equal(t, http.StatusConflict, status)

	status, body = api.do(t, http.MethodGet, "/modules/inventario", api.tokens[entity.RoleStaff], nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "/inventario", decode(t, body)["basePath"])

	status, _ = api.do(t, http.MethodGet, "/modules/no-existe", api.tokens[entity.RoleStaff], nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = api.do(t, http.MethodGet, "/modules", api.tokens[entity.RoleViewer], nil)
	require.Equal(t, http.StatusOK, status)
	var catalog []map[string]any
	require.NoError(t, json.Unmarshal(body, &catalog))
	assert.Len(t, catalog, 3)
}

func TestMembers_UltimoOwnerProtegido(t *testing.T) {
	api := newTestAPI(t)
	owner := api.tokens[entity.RoleOwner]

	members, err := api.store.Members.ListMembers(context.Background(), api.firm.ID)
	require.NoError(t, err)
	ownerID := ""
	for _, m := range members {
		if m.Role == entity.RoleOwner {
			ownerID = m.UserID
		}
	}
	require.NotEmpty(t, ownerID)

	status, _ := api.do(t, http.MethodDelete, api.firmPath("/members/%s", ownerID), owner, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = api.do(t, http.MethodPatch, api.firmPath("/members/%s", ownerID), api.tokens[entity.RoleAdmin], map[string]any{"role": "VIEWER"})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestInternalError_NoExponeDetalle(t *testing.T) {
	api := newTestAPI(t)
	api.store.Fail("Modules.ListWithStats", errors.New("dial tcp 10.0.0.5:5432: password=hunter2"))

	status, body := api.do(t, http.MethodGet, "/modules", api.tokens[entity.RoleViewer], nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, apphttp.CodeInternal, decode(t, body)["code"])
	assert.NotContains(t, string(body), "hunter2")
	assert.NotContains(t, string(body), "10.0.0.5")
}

func TestRutaInexistente(t *testing.T) {
	api := newTestAPI(t)
	status, _ := api.do(t, http.MethodGet, "/no-existe", api.tokens[entity.RoleOwner], nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDepartmentsClientsYAuditoria(t *testing.T) {
	api := newTestAPI(t)
	owner := api.tokens[entity.RoleOwner]

	status, _ := api.do(t, http.MethodPost, api.firmPath("/hr/departments"), owner, map[string]any{"name": "Ventas"})
	require.Equal(t, http.StatusCreated, status)
	status, _ = api.do(t, http.MethodPost, api.firmPath("/hr/departments"), owner, map[string]any{"name": "Ventas"})
	assert.Equal(t, http.StatusConflict, status)

	status, body := api.do(t, http.MethodGet, api.firmPath("/hr/departments"), api.tokens[entity.RoleManager], nil)
	require.Equal(t, http.StatusOK, status)
	var departments []map[string]any
	require.NoError(t, json.Unmarshal(body, &departments))
	assert.Len(t, departments, 1)

	status, _ = api.do(t, http.MethodPost, api.firmPath("/modules"), owner, map[string]any{"moduleId": "crm"})
	require.Equal(t, http.StatusCreated, status)

	status, body = api.do(t, http.MethodPost, api.firmPath("/crm/clients"), api.tokens[entity.RoleStaff], map[string]any{
		"name": "Cliente Uno", "email": "uno@cliente.test",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	clientID, _ := decode(t, body)["id"].(string)

	status, _ = api.do(t, http.MethodPost, api.firmPath("/crm/clients"), api.tokens[entity.RoleViewer], map[string]any{"name": "X"})
	assert.Equal(t, http.StatusForbidden, status)

	status, body = api.do(t, http.MethodPatch, api.firmPath("/crm/clients/%s", clientID), api.tokens[entity.RoleStaff], map[string]any{"notes": "vip"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "vip", decode(t, body)["notes"])

	status, body = api.do(t, http.MethodGet, api.firmPath("/crm/clients"), api.tokens[entity.RoleViewer], nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode(t, body)["items"], 1)

	status, _ = api.do(t, http.MethodDelete, api.firmPath("/crm/clients/%s", clientID), api.tokens[entity.RoleStaff], nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = api.do(t, http.MethodDelete, api.firmPath("/crm/clients/%s", clientID), api.tokens[entity.RoleStaff], nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = api.do(t, http.MethodGet, api.firmPath("/audit-logs"), api.tokens[entity.RoleViewer], nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = api.do(t, http.MethodGet, api.firmPath("/audit-logs"), api.tokens[entity.RoleAdmin], nil)
	require.Equal(t, http.StatusOK, status)
	var audit struct {
		Items []struct {
			Action string `json:"action"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(body, &audit))
	var actions []string
	for _, a := range audit.Items {
		actions = append(actions, a.Action)
	}
	assert.Contains(t, actions, "module.install")
}
