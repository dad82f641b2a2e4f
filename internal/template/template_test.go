// internal/template/template_test.go
package template

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBuiltin(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	tmpl, err := Load("backrooms")
	if err != nil {
		t.Fatalf("Load(backrooms) failed: %v", err)
	}
	if len(tmpl.Participants) != 2 {
		t.Fatalf("backrooms has %d participants, want 2", len(tmpl.Participants))
	}
	if err := tmpl.Validate(); err != nil {
		t.Errorf("built-in template invalid: %v", err)
	}

	if _, err := Load("no-such-template"); err == nil {
		t.Error("Load of a missing template succeeded")
	}
}

func TestLoadUserTemplateOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	tdir := filepath.Join(dir, "backrooms", "templates")
	if err := os.MkdirAll(tdir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "name: backrooms\nmax_turns: 3\nparticipants:\n" +
		"  - model: opus\n    system: override one\n" +
		"  - model: sonnet\n"
	if err := os.WriteFile(filepath.Join(tdir, "backrooms.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	tmpl, err := Load("backrooms")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tmpl.MaxTurns != 3 {
		t.Errorf("max turns = %d, user file did not win", tmpl.MaxTurns)
	}
	if tmpl.Participants[0].Model != "opus" {
		t.Errorf("participant 0 model = %q", tmpl.Participants[0].Model)
	}
}

func TestLoadRejectsInvalidTemplate(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	tdir := filepath.Join(dir, "backrooms", "templates")
	if err := os.MkdirAll(tdir, 0755); err != nil {
		t.Fatal(err)
	}
	// Single participant: below the minimum.
	if err := os.WriteFile(filepath.Join(tdir, "solo.yaml"), []byte("participants:\n  - model: opus\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load("solo"); err == nil {
		t.Error("Load accepted a one-participant template")
	}
}

func TestValidate(t *testing.T) {
	good := &Template{Name: "t", Participants: []ParticipantSpec{
		{Model: "opus", Seed: []SeedMessage{{Role: "user", Content: "x"}}},
		{Model: "sonnet"},
	}}
	if err := good.Validate(); err != nil {
		t.Errorf("valid template rejected: %v", err)
	}

	noModel := &Template{Name: "t", Participants: []ParticipantSpec{{Model: "opus"}, {}}}
	if err := noModel.Validate(); err == nil {
		t.Error("template with a modelless participant accepted")
	}

	badRole := &Template{Name: "t", Participants: []ParticipantSpec{
		{Model: "opus", Seed: []SeedMessage{{Role: "narrator", Content: "x"}}},
		{Model: "sonnet"},
	}}
	if err := badRole.Validate(); err == nil {
		t.Error("template with an invalid seed role accepted")
	}
}

func TestListMergesUserAndBuiltin(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	tdir := filepath.Join(dir, "backrooms", "templates")
	if err := os.MkdirAll(tdir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tdir, "mine.yaml"), []byte("participants: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	// Duplicate of a built-in must not be listed twice.
	if err := os.WriteFile(filepath.Join(tdir, "backrooms.yaml"), []byte("participants: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	names := List()
	counts := make(map[string]int)
	for _, n := range names {
		counts[n]++
	}
	if counts["mine"] != 1 {
		t.Errorf("user template listed %d times", counts["mine"])
	}
	if counts["backrooms"] != 1 {
		t.Errorf("backrooms listed %d times, want 1", counts["backrooms"])
	}
	if counts["base-loop"] != 1 {
		t.Errorf("built-in base-loop listed %d times", counts["base-loop"])
	}
}
