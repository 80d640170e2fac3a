package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func parse(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	root := newRootCmd()
	cmd, rest, err := root.Find(args)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if err := cmd.ParseFlags(rest); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd
}

func TestResolveConfig_Defaults(t *testing.T) {
	cfg, err := resolveConfig(parse(t, "compare"))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.Params.TimeStep != 0.001 || cfg.Params.InitialSpeed != 20 {
		t.Errorf("unexpected defaults %+v", cfg.Params)
	}
	if len(cfg.Methods) != 2 {
		t.Errorf("expected euler and rk4, got %v", cfg.Methods)
	}
}

func TestResolveConfig_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	data := "params:\n  initial_speed: 12\n  launch_angle_deg: 30\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := resolveConfig(parse(t, "compare", "--preset", "moon", "--config", path, "--angle", "60"))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	p := cfg.Params
	if p.Gravity != 1.62 {
		t.Errorf("preset gravity lost: %f", p.Gravity)
	}
	if p.InitialSpeed != 12 {
		t.Errorf("config speed lost: %f", p.InitialSpeed)
	}
	if p.LaunchAngleDeg != 60 {
		t.Errorf("flag angle should win, got %f", p.LaunchAngleDeg)
	}
}

func TestResolveConfig_Errors(t *testing.T) {
	if _, err := resolveConfig(parse(t, "compare", "--preset", "mars")); err == nil {
		t.Error("expected error for unknown preset")
	}
	if _, err := resolveConfig(parse(t, "compare", "--dt", "0")); err == nil {
		t.Error("expected error for zero dt")
	}
	if _, err := resolveConfig(parse(t, "plot", "--width", "0")); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestResolveConfig_FormatFlagPerCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("render:\n  format: svg\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := resolveConfig(parse(t, "export", "--config", path, "--format", "json"))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.Render.Format != "svg" {
		t.Errorf("export --format should not touch the render format, got %q", cfg.Render.Format)
	}

	cfg, err = resolveConfig(parse(t, "plot", "--config", path, "--format", "html"))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.Render.Format != "html" {
		t.Errorf("plot --format should win, got %q", cfg.Render.Format)
	}
}
