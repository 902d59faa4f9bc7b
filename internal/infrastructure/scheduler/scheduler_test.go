package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Holding-api/pkg/logger"
)

func TestAdd_ExpresionInvalida(t *testing.T) {
	s := New(logger.Nop())
	err := s.Add("x", "no es cron", func(context.Context) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "x")
}

func TestAdd_Vacia(t *testing.T) {
	s := New(logger.Nop())
	require.NoError(t, s.Add("x", "", func(context.Context) error { return nil }))
	assert.Equal(t, 0, s.jobs)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, s.Run(ctx))
}

func TestRun_EjecutaYSeDetiene(t *testing.T) {
	s := New(logger.Nop())
	var calls atomic.Int32
	ran := make(chan struct{}, 1)
	require.NoError(t, s.Add("tick", "@every 1s", func(ctx context.Context) error {
		calls.Add(1)
		select {
		case ran <- struct{}{}:
		default:
		}
		return errors.New("fallo registrado, no detiene el cron")
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("la tarea no se ejecutó")
	}
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run no terminó")
	}
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
}

// Una ejecución en curso ve la cancelación del contexto de Run; Stop espera a que termine.
func TestRun_CancelaTareaEnCurso(t *testing.T) {
	s := New(logger.Nop())
	started := make(chan struct{}, 1)
	var sawCancel atomic.Bool
	require.NoError(t, s.Add("larga", "@every 1s", func(ctx context.Context) error {
		select {
		case started <- struct{}{}:
		default:
		}
		select {
		case <-ctx.Done():
			sawCancel.Store(true)
			return ctx.Err()
		case <-time.After(time.Minute):
			return nil
		}
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("la tarea no arrancó")
	}
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Run no terminó: la tarea no vio la cancelación")
	}
	assert.True(t, sawCancel.Load())
}
