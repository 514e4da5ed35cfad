package mapping

import (
	"testing"

	"github.com/leandrodaf/korgi/internal/directive"
)

func testConfig() *directive.Configuration {
	cfg := directive.Defaults()
	cfg.Password = "x"
	cfg.Buttons[41] = "say hello"
	cfg.Knobs[16] = directive.KnobAction{Command: "sensitivity", Min: 0, Max: 5}
	cfg.Knobs[7] = directive.KnobAction{Command: "volume", Min: 1, Max: -1}
	return cfg
}

func TestResolveKnob(t *testing.T) {
	cfg := testConfig()
	tests := []struct {
		control, value int
		want           string
	}{
		{16, 0, "sensitivity 0.000"},
		{16, 127, "sensitivity 5.000"},
		{16, 64, "sensitivity 2.520"},
		{16, 255, "sensitivity 5.000"},
		{7, 0, "volume 1.000"},
		{7, 127, "volume -1.000"},
	}
	for _, tt := range tests {
		got, ok := Resolve(cfg, tt.control, tt.value)
		if !ok || got != tt.want {
			t.Errorf("Resolve(%d, %d) = %q, %v; want %q", tt.control, tt.value, got, ok, tt.want)
		}
	}
}

func TestResolveButtonOnlyOnPress(t *testing.T) {
	cfg := testConfig()

	if cmd, ok := Resolve(cfg, 41, 0); ok {
		t.Errorf("release emitted %q", cmd)
	}
	if cmd, ok := Resolve(cfg, 41, 1); !ok || cmd != "say hello" {
		t.Errorf("press = %q, %v", cmd, ok)
	}

	a := Lookup(cfg, 41, 0)
	if a.Kind != MappedButton || a.Command != "" {
		t.Errorf("release action = %+v", a)
	}
}

func TestResolveUnmapped(t *testing.T) {
	a := Lookup(testConfig(), 99, 127)
	if a.Kind != Unmapped || a.Command != "" {
		t.Errorf("action = %+v", a)
	}
	if _, ok := Resolve(nil, 41, 127); ok {
		t.Error("nil configuration resolved a command")
	}
}

func TestResolverFollowsCommits(t *testing.T) {
	store := NewStore(nil)
	r := NewResolver(store)
	if _, ok := r.Resolve(41, 127); ok {
		t.Fatal("empty store resolved a command")
	}

	old := testConfig()
	store.Commit(old)
	next := old.Clone()
	next.Buttons[41] = "say bye"

	if cmd, _ := r.Resolve(41, 127); cmd != "say hello" {
		t.Errorf("cmd = %q", cmd)
	}
	store.Commit(next)
	if cmd, _ := r.Resolve(41, 127); cmd != "say bye" {
		t.Errorf("cmd = %q", cmd)
	}
	if r.Lookup(16, 127).Kind != MappedKnob {
		t.Error("knob lost after commit")
	}
	if old.Buttons[41] != "say hello" {
		t.Error("clone shares the button map")
	}
}

func TestStoreSnapshotIsConsistentUnderConcurrentCommits(t *testing.T) {
	a := testConfig()
	b := testConfig()
	b.Buttons[41] = "say b"
	b.Knobs[16] = directive.KnobAction{Command: "b", Min: 0, Max: 1}

	store := NewStore(a)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			if i%2 == 0 {
				store.Commit(b)
			} else {
				store.Commit(a)
			}
		}
	}()

	for i := 0; i < 1000; i++ {
		snap := store.Snapshot()
		if snap != a && snap != b {
			t.Fatal("snapshot is neither committed table")
		}
	}
	<-done
}
