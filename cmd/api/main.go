package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Holding-api/internal/application/auth"
	"github.com/jhoicas/Holding-api/internal/application/gate"
	"github.com/jhoicas/Holding-api/internal/application/navigation"
	"github.com/jhoicas/Holding-api/internal/application/usecase"
	"github.com/jhoicas/Holding-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Holding-api/internal/infrastructure/scheduler"
	"github.com/jhoicas/Holding-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Holding-api/internal/interfaces/http"
	"github.com/jhoicas/Holding-api/pkg/config"
	"github.com/jhoicas/Holding-api/pkg/logger"
	"github.com/jhoicas/Holding-api/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	repos := postgres.NewRepos(pool)
	txRunner := postgres.NewTxRunner(pool)
	m := metrics.New(cfg.App.Name)

	firmGate := gate.New(repos.Firms, repos.Members, repos.Modules, repos.FirmModules, gate.WithDenialRecorder(m))

	// Subida de logos: sólo con bucket configurado.
	var uploader usecase.Uploader
	if cfg.Storage.Enabled() {
		s3Uploader, err := storage.NewS3Uploader(ctx, cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente S3")
		}
		uploader = s3Uploader
	} else {
		log.Warn().Msg("S3_BUCKET vacío: subida de logos deshabilitada")
	}

	authUC := auth.NewAuthUseCase(repos.Users, repos.Members, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	firmUC := usecase.NewFirmUseCase(repos.Holdings, repos.Firms, repos.Members, txRunner, uploader, usecase.UploadOptions{
		MaxSize:      cfg.Storage.MaxLogoSize,
		AllowedTypes: cfg.Storage.AllowedTypes,
	})
	auditUC := usecase.NewAuditUseCase(repos.Audit)
	membershipUC := usecase.NewMembershipUseCase(repos.Users, repos.Members, txRunner)
	moduleSvc := usecase.NewModuleService(repos.Modules, repos.Members)
	firmModuleUC := usecase.NewFirmModuleUseCase(repos.FirmModules, repos.Modules, txRunner)
	composer := navigation.NewComposer(repos.FirmModules, log)
	departmentUC := usecase.NewDepartmentUseCase(repos.Departments)
	employeeUC := usecase.NewEmployeeUseCase(repos.Employees, repos.Departments, txRunner)
	contractUC := usecase.NewContractUseCase(repos.Contracts, repos.Employees, txRunner, log)
	transferUC := usecase.NewTransferUseCase(repos.Transfers, repos.Employees, repos.Firms, repos.FirmModules, txRunner)
	clientUC := usecase.NewClientUseCase(repos.Clients)

	jobs := scheduler.New(log)
	err = jobs.Add("contract-expiry", cfg.Jobs.ContractExpiry, func(ctx context.Context) error {
		n, err := contractUC.ExpireDue(ctx, time.Now())
		if n > 0 {
			log.Info().Int("expired", n).Msg("contratos vencidos")
		}
		return err
	})
	if err != nil {
		log.Fatal().Err(err).Msg("programar tareas")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		BodyLimit:    cfg.HTTP.BodyLimit,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(httpRouter.RequestLogger(log))
	app.Use(m.Middleware())
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Docs.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.SwaggerFile,
			Path:     "docs",
			Title:    "Holding API",
		}))
	} else {
		log.Warn().Str("file", cfg.Docs.SwaggerFile).Msg("swagger.json no encontrado: /docs deshabilitado")
	}

	app.Get("/health", httpRouter.Health(cfg.App.Name, pool))
	if cfg.Metrics.Enabled {
		app.Get(cfg.Metrics.Path, m.Handler())
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Sessions:   authUC,
		Gate:       firmGate,
		Auth:       httpRouter.NewAuthHandler(authUC),
		Firms:      httpRouter.NewFirmHandler(firmUC, auditUC),
		Members:    httpRouter.NewMemberHandler(membershipUC),
		Modules:    httpRouter.NewModuleHandler(moduleSvc, firmModuleUC),
		Navigation: httpRouter.NewNavigationHandler(firmGate, composer),
		HR:         httpRouter.NewHRHandler(departmentUC, employeeUC, contractUC, transferUC),
		CRM:        httpRouter.NewCRMHandler(clientUC),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Listen(cfg.HTTP.Addr())
	})
	g.Go(func() error {
		return jobs.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("servidor finalizado con error")
	}
	log.Info().Msg("aplicación detenida")
}
