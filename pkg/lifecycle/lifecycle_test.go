package lifecycle_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/documark/triage/pkg/lifecycle"
)

func TestStartupReadiness(t *testing.T) {
	lc := lifecycle.New()

	if lc.Ready() {
		t.Error("coordinator must not report ready before startup completes")
	}

	var ran atomic.Bool
	lc.OnStartup(func() {
		ran.Store(true)
	})

	lc.WaitForStartup()

	if !ran.Load() {
		t.Error("startup hook did not run")
	}
	if !lc.Ready() {
		t.Error("coordinator must report ready after startup")
	}
}

func TestShutdownRunsHooks(t *testing.T) {
	lc := lifecycle.New()

	var cleaned atomic.Bool
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		cleaned.Store(true)
	})

	if err := lc.Shutdown(time.Second); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if !cleaned.Load() {
		t.Error("shutdown hook did not run")
	}

	select {
	case <-lc.Context().Done():
	default:
		t.Error("context must be cancelled after shutdown")
	}
}

func TestShutdownTimeout(t *testing.T) {
	lc := lifecycle.New()

	release := make(chan struct{})
	lc.OnShutdown(func() {
		<-release
	})

	err := lc.Shutdown(10 * time.Millisecond)
	if err == nil {
		t.Error("expected timeout error from stuck shutdown hook")
	}

	close(release)
}
