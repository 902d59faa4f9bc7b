// Package scheduler ejecuta tareas periódicas (vencimiento de contratos) con robfig/cron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/Holding-api/pkg/logger"
)

// JobFunc una ejecución de la tarea.
type JobFunc func(ctx context.Context) error

// Scheduler envuelve cron.Cron. Una ejecución que no terminó bloquea la siguiente.
type Scheduler struct {
	cron    *cron.Cron
	log     *logger.Logger
	baseCtx context.Context // lo reemplaza Run antes de arrancar el cron
	jobs    int
}

// New crea el scheduler (expresiones estándar de 5 campos y descriptores @every/@hourly).
func New(log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		log:     log,
		baseCtx: context.Background(),
	}
}

// Add registra la tarea. Una expresión vacía la deshabilita.
func (s *Scheduler) Add(name, spec string, fn JobFunc) error {
	if spec == "" {
		s.log.Info().Str("job", name).Msg("tarea deshabilitada")
		return nil
	}
	_, err := s.cron.AddFunc(spec, func() { s.runJob(name, fn) })
	if err != nil {
		return fmt.Errorf("scheduler: %s: expresión %q: %w", name, spec, err)
	}
	s.jobs++
	s.log.Info().Str("job", name).Str("schedule", spec).Msg("tarea programada")
	return nil
}

func (s *Scheduler) runJob(name string, fn JobFunc) {
	start := time.Now()
	err := fn(s.baseCtx)
	ev := s.log.Info()
	if err != nil {
		ev = s.log.Error().Err(err)
	}
	ev.Str("job", name).Dur("duration", time.Since(start)).Msg("tarea ejecutada")
}

// Run arranca el cron y bloquea hasta que ctx termine; espera a las tareas en curso.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.jobs == 0 {
		<-ctx.Done()
		return nil
	}
	s.baseCtx = ctx
	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.log.Info().Msg("scheduler detenido")
	return nil
}
