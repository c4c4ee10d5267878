package audit

import (
	"testing"

	"github.com/danmuck/chaosctl/internal/controls"
	"github.com/danmuck/chaosctl/internal/testutil/testlog"
)

func TestModuleImplementsEveryHook(t *testing.T) {
	testlog.Start(t)
	m := New()
	hooks := m.Hooks()

	if hooks.Configure == nil || hooks.Cleanup == nil {
		t.Fatalf("expected configure and cleanup hooks")
	}
	funcs := []controls.HookFunc{
		hooks.BeforeExperiment, hooks.AfterExperiment,
		hooks.BeforeHypothesis, hooks.AfterHypothesis,
		hooks.BeforeMethod, hooks.AfterMethod,
		hooks.BeforeRollback, hooks.AfterRollback,
		hooks.BeforeActivity, hooks.AfterActivity,
	}
	for i, fn := range funcs {
		if fn == nil {
			t.Fatalf("hook %d is nil", i)
		}
	}
}

func TestLifecycleEventsSucceed(t *testing.T) {
	testlog.Start(t)
	reg := controls.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	d := controls.NewDispatcher(reg)

	ctl := &controls.Control{
		Name:     "audit",
		Provider: &controls.Provider{Module: Path},
	}
	target := map[string]any{"title": "latency experiment"}

	if err := d.Initialize(ctl, controls.Configuration{"k": "v"}, nil); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	for _, level := range controls.Levels() {
		if err := d.Apply(level, ctl, target, "run-state", controls.Configuration{"k": "v"}, nil); err != nil {
			t.Fatalf("apply %s: %v", level, err)
		}
	}
	if err := d.Cleanup(ctl); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
}

func TestDescribePicksTitleOrName(t *testing.T) {
	testlog.Start(t)
	if got := describe(map[string]any{"title": "t"}); got != "t" {
		t.Fatalf("expected title, got %q", got)
	}
	if got := describe(map[string]any{"name": "n"}); got != "n" {
		t.Fatalf("expected name, got %q", got)
	}
	if got := describe("opaque"); got != "" {
		t.Fatalf("expected empty for opaque target, got %q", got)
	}
}
