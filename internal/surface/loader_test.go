package surface

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoaderLoadsYAMLAndJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lpd8.yaml", `
name: LPD8
description: Akai LPD8 pads and knobs
controls:
  pad1: {kind: button, channel: 36}
  k1:   {kind: knob, channel: 70}
`)
	writeFile(t, dir, "fader.json", `{"name": "fader", "controls": {"f1": {"kind": "slider", "channel": 7}}}`)
	writeFile(t, dir, "README.txt", "not a profile")

	l, err := NewLoader([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	profiles, err := l.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(profiles) != 2 {
		t.Fatalf("loaded %d profiles, want 2", len(profiles))
	}

	catalog, err := Builtin().With(profiles...)
	if err != nil {
		t.Fatal(err)
	}
	sel := NewSelector(catalog, "LPD8")
	if c, ok := sel.Resolve("k1"); !ok || c != (Control{RotaryKnob, 70}) {
		t.Errorf("Resolve(k1) = %v, %v", c, ok)
	}
	if !sel.Select("fader") {
		t.Fatal("fader profile missing")
	}
	if c, ok := sel.Resolve("f1"); !ok || c != (Control{Slider, 7}) {
		t.Errorf("Resolve(f1) = %v, %v", c, ok)
	}
}

func TestLoaderRejectsInvalidProfiles(t *testing.T) {
	tests := map[string]string{
		"bad-kind.yaml":    "name: x\ncontrols:\n  a: {kind: pad, channel: 1}\n",
		"bad-channel.yaml": "name: x\ncontrols:\n  a: {kind: knob, channel: 200}\n",
		"no-name.yaml":     "controls:\n  a: {kind: knob, channel: 1}\n",
		"empty.yaml":       "",
	}
	l, err := NewLoader(nil)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	for name, content := range tests {
		path := writeFile(t, dir, name, content)
		if _, err := l.Load(path); err == nil {
			t.Errorf("%s: expected an error", name)
		} else if !strings.Contains(err.Error(), name) && !strings.Contains(err.Error(), "validation") {
			t.Errorf("%s: error does not name the file: %v", name, err)
		}
	}
}

func TestLoadAllReportsEveryBrokenFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "name: a\ncontrols: {}\n")
	writeFile(t, dir, "b.yaml", "name: b\ncontrols:\n  x: {kind: button}\n")

	l, _ := NewLoader([]string{dir, filepath.Join(dir, "missing")})
	_, err := l.LoadAll()
	if err == nil {
		t.Fatal("expected errors")
	}
	for _, want := range []string{"a.yaml", "b.yaml", "missing"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error does not mention %s: %v", want, err)
		}
	}
}

func TestDecodeProfile(t *testing.T) {
	p, err := decodeProfile([]byte("name: pads\ncontrols:\n  pad1: {kind: button, channel: 36}\n  k1: {kind: knob, channel: 70}\n"))
	if err != nil {
		t.Fatal(err)
	}
	if p.Name() != "pads" || p.Len() != 2 {
		t.Errorf("decoded %q with %d controls", p.Name(), p.Len())
	}
	if c, ok := p.Lookup("pad1"); !ok || c != (Control{Button, 36}) {
		t.Errorf("Lookup(pad1) = %v, %v", c, ok)
	}

	for name, doc := range map[string]string{
		"channel out of range": "name: x\ncontrols:\n  a: {kind: knob, channel: 128}\n",
		"fractional channel":   "name: x\ncontrols:\n  a: {kind: knob, channel: 1.5}\n",
		"unknown field":        "name: x\nvendor: korg\ncontrols:\n  a: {kind: knob, channel: 1}\n",
		"name with spaces":     "name: my pads\ncontrols:\n  a: {kind: knob, channel: 1}\n",
	} {
		if _, err := decodeProfile([]byte(doc)); err == nil || !strings.Contains(err.Error(), "not a control surface profile") {
			t.Errorf("%s: err = %v", name, err)
		}
	}
}
