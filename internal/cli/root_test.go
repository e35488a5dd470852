package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tasklist/internal/config"
	"tasklist/internal/todo"
)

func TestConfigCmd_WritesAndPrintsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", path, "config"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file written: %v", err)
	}
	got := out.String()
	for _, want := range []string{"# " + path, "heading = 'ToDo App'", "[keys]", "[[seed]]"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected output to contain %q:\n%s", want, got)
		}
	}
}

func TestConfigCmd_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`default_filter = "later"`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path, "config"})
	err := cmd.Execute()
	if !errors.Is(err, config.ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestNewStore(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name       string
		app        App
		wantLen    int
		wantFilter todo.Filter
		wantErr    bool
	}{
		{name: "seeded", app: App{}, wantLen: len(cfg.Seed), wantFilter: todo.FilterAll},
		{name: "no seed", app: App{NoSeed: true}, wantLen: 0, wantFilter: todo.FilterAll},
		{name: "filter flag", app: App{Filter: "done"}, wantLen: len(cfg.Seed), wantFilter: todo.FilterDone},
		{name: "bad filter flag", app: App{Filter: "soon"}, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			store, err := newStore(&tt.app, cfg)
			if tt.wantErr {
				if !errors.Is(err, config.ErrInvalidFilter) {
					t.Fatalf("expected ErrInvalidFilter, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("newStore: %v", err)
			}
			if got := store.Len(); got != tt.wantLen {
				t.Fatalf("expected %d tasks, got %d", tt.wantLen, got)
			}
			if got := store.Filter(); got != tt.wantFilter {
				t.Fatalf("expected filter %q, got %q", tt.wantFilter, got)
			}
		})
	}
}

func TestNewStore_BadFilterFlagNamesFlag(t *testing.T) {
	_, err := newStore(&App{Filter: "soon"}, config.Default())
	if err == nil {
		t.Fatalf("expected error")
	}
	msg := err.Error()
	if strings.Contains(msg, "default_filter") || !strings.Contains(msg, `--filter "soon"`) {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestRootRejectsArgs(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "c.toml"), "extra"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for positional args")
	}
}
