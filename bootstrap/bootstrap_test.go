package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/scribe/component"
	"github.com/kbukum/scribe/config"
	"github.com/kbukum/scribe/logger"
)

type testConfig struct {
	config.ServiceConfig
}

type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	health   component.Health
	started  bool
	stopped  bool
	order    *[]string
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(context.Context) error {
	m.started = true
	if m.order != nil {
		*m.order = append(*m.order, "start:"+m.name)
	}
	return m.startErr
}
func (m *mockComponent) Stop(context.Context) error {
	m.stopped = true
	if m.order != nil {
		*m.order = append(*m.order, "stop:"+m.name)
	}
	return m.stopErr
}
func (m *mockComponent) Health(context.Context) component.Health {
	if m.health.Name == "" {
		return component.Health{Name: m.name, Status: component.StatusHealthy}
	}
	return m.health
}

// describedComponent also reports a description and routes.
type describedComponent struct {
	mockComponent
}

func (d *describedComponent) Describe() component.Description {
	return component.Description{Name: "HTTP Server", Type: "server", Details: "0.0.0.0:3001"}
}

func (d *describedComponent) Routes() []component.Route {
	return []component.Route{{Method: "POST", Path: "/transcribe", Handler: "Handler.Transcribe"}}
}

func newTestApp(t *testing.T, opts ...Option) *App[*testConfig] {
	t.Helper()
	cfg := &testConfig{ServiceConfig: config.ServiceConfig{Name: "scribe", Version: "1.0.0"}}
	opts = append([]Option{WithLogger(logger.NewNop()), WithSummaryOutput(io.Discard)}, opts...)
	app, err := NewApp(cfg, opts...)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	return app
}

func TestNewApp(t *testing.T) {
	app := newTestApp(t)
	if app.Name != "scribe" || app.Version != "1.0.0" {
		t.Errorf("name/version = %q/%q", app.Name, app.Version)
	}
	if app.Cfg.Environment != "development" {
		t.Errorf("defaults not applied: environment = %q", app.Cfg.Environment)
	}
	if app.Components == nil || app.Logger == nil || app.Summary == nil {
		t.Error("expected components, logger and summary")
	}
}

func TestNewApp_InvalidConfig(t *testing.T) {
	_, err := NewApp(&testConfig{}, WithLogger(logger.NewNop()))
	if err == nil || !strings.Contains(err.Error(), "config validation") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRunTask_Lifecycle(t *testing.T) {
	var order []string
	app := newTestApp(t)
	for _, name := range []string{"recordings", "transcription", "http-server"} {
		if err := app.RegisterComponent(&mockComponent{name: name, order: &order}); err != nil {
			t.Fatal(err)
		}
	}
	app.OnStart(func(context.Context) error { order = append(order, "onStart"); return nil })
	app.OnConfigure(func(_ context.Context, a *App[*testConfig]) error {
		if a.Cfg.Name != "scribe" {
			t.Errorf("typed config not passed through")
		}
		order = append(order, "configure")
		return nil
	})
	app.OnReady(func(context.Context) error { order = append(order, "onReady"); return nil })
	app.OnStop(func(context.Context) error { order = append(order, "onStop"); return nil })

	err := app.RunTask(context.Background(), func(context.Context) error {
		order = append(order, "task")
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask: %v", err)
	}

	want := "start:recordings,start:transcription,start:http-server,onStart,configure,onReady,task," +
		"onStop,stop:http-server,stop:transcription,stop:recordings"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("order:\n got %s\nwant %s", got, want)
	}
}

func TestRunTask_TaskErrorWins(t *testing.T) {
	app := newTestApp(t)
	_ = app.RegisterComponent(&mockComponent{name: "c", stopErr: errors.New("stop failed")})

	taskErr := errors.New("no speech")
	if err := app.RunTask(context.Background(), func(context.Context) error { return taskErr }); !errors.Is(err, taskErr) {
		t.Errorf("expected task error, got %v", err)
	}
}

func TestRunTask_StartFailureStopsStarted(t *testing.T) {
	app := newTestApp(t)
	first := &mockComponent{name: "first"}
	second := &mockComponent{name: "second", startErr: errors.New("bind failed")}
	_ = app.RegisterComponent(first)
	_ = app.RegisterComponent(second)

	ran := false
	err := app.RunTask(context.Background(), func(context.Context) error { ran = true; return nil })
	if err == nil || !strings.Contains(err.Error(), "bind failed") {
		t.Fatalf("expected start error, got %v", err)
	}
	if ran {
		t.Error("task must not run after failed startup")
	}
	if !first.stopped {
		t.Error("started component must be stopped")
	}
	if second.stopped {
		t.Error("component that failed to start must not be stopped")
	}
}

func TestRun_ContextCancel(t *testing.T) {
	app := newTestApp(t, WithGracefulTimeout(time.Second))
	c := &mockComponent{name: "http-server"}
	_ = app.RegisterComponent(c)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if !c.stopped {
		t.Error("component not stopped")
	}
}

func TestReadyCheck(t *testing.T) {
	app := newTestApp(t)
	_ = app.RegisterComponent(&mockComponent{name: "ok"})
	_ = app.RegisterComponent(&mockComponent{name: "bad", health: component.Health{
		Name: "bad", Status: component.StatusUnhealthy, Message: "no credentials",
	}})

	err := app.ReadyCheck(context.Background())
	if err == nil || !strings.Contains(err.Error(), "bad=unhealthy(no credentials)") {
		t.Errorf("unexpected ready check result: %v", err)
	}
}

func TestSummary_Display(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(t, WithSummaryOutput(&buf))
	_ = app.RegisterComponent(&mockComponent{name: "recordings"})
	_ = app.RegisterComponent(&describedComponent{mockComponent{name: "http-server"}})

	if err := app.RunTask(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		"scribe v1.0.0",
		"recordings",
		"HTTP Server [server]: 0.0.0.0:3001",
		"POST    /transcribe → Handler.Transcribe",
		"✅ http-server: healthy",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
