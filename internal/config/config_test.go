package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Mode != ModeAuto {
		t.Errorf("Mode: got %q, want auto", cfg.Mode)
	}
	if cfg.ThumbWidth != 256 || cfg.ThumbHeight != 256 {
		t.Errorf("thumb box: got %dx%d, want 256x256", cfg.ThumbWidth, cfg.ThumbHeight)
	}
	if !cfg.IgnorePackedAssets {
		t.Error("IgnorePackedAssets: got false, want true")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad mode", func(c *Config) { c.Mode = "legacy" }, "invalid mode"},
		{"bad color", func(c *Config) { c.ColorMode = "maybe" }, "invalid color"},
		{"zero thumb box", func(c *Config) { c.ThumbWidth = 0 }, "thumbnail size"},
		{"negative max items", func(c *Config) { c.MaxItems = -1; c.ResourceConstrained = true }, "must not be negative"},
		{"max items without constrained", func(c *Config) { c.MaxItems = 5 }, "only honored"},
		{"missing container", func(c *Config) { c.ContainerPath = "" }, "container path"},
		{"missing output dir", func(c *Config) { c.OutputDir = "" }, "output directory"},
		{"list without output dir", func(c *Config) { c.OutputDir = ""; c.ListOnly = true }, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.ContainerPath = "assets.carchive"
			cfg.OutputDir = "out"
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate: got %v, want error containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestParseFlags(t *testing.T) {
	cfg := DefaultConfig()
	err := ParseFlags(&cfg, []string{
		"--mode", "themestore",
		"--constrained", "--max-items", "10",
		"--thumbs", "--keep-packed",
		"in.carchive", "out/",
	})
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	if cfg.Mode != ModeThemeStore {
		t.Errorf("Mode: got %q, want themestore", cfg.Mode)
	}
	if !cfg.ResourceConstrained || cfg.MaxItems != 10 {
		t.Errorf("constrained/max: got %v/%d", cfg.ResourceConstrained, cfg.MaxItems)
	}
	if cfg.IgnorePackedAssets {
		t.Error("IgnorePackedAssets: --keep-packed should clear it")
	}
	if cfg.ContainerPath != "in.carchive" || cfg.OutputDir != "out" {
		t.Errorf("positionals: got %q, %q", cfg.ContainerPath, cfg.OutputDir)
	}
}

func TestParseFlags_ListWithoutOutputDir(t *testing.T) {
	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, []string{"--list", "in.carchive"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if !cfg.ListOnly || cfg.ContainerPath != "in.carchive" {
		t.Errorf("got ListOnly=%v path=%q", cfg.ListOnly, cfg.ContainerPath)
	}
}

func TestParseFlags_InvalidMode(t *testing.T) {
	cfg := DefaultConfig()
	err := ParseFlags(&cfg, []string{"--mode", "legacy", "in", "out"})
	if err == nil {
		t.Fatal("ParseFlags: want error for invalid mode")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "acextract.yaml")
	body := "mode: catalog\nthumbWidth: 128\nconstrained: true\nignorePackedAssets: false\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := DefaultConfig()
	if err := LoadFile(&cfg, path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.Mode != ModeCatalog {
		t.Errorf("Mode: got %q, want catalog", cfg.Mode)
	}
	if cfg.ThumbWidth != 128 {
		t.Errorf("ThumbWidth: got %d, want 128", cfg.ThumbWidth)
	}
	if cfg.ThumbHeight != 256 {
		t.Errorf("ThumbHeight: got %d, want 256 (unset keeps default)", cfg.ThumbHeight)
	}
	if !cfg.ResourceConstrained {
		t.Error("Constrained: got false, want true")
	}
	if cfg.IgnorePackedAssets {
		t.Error("IgnorePackedAssets: got true, want false")
	}
}

func TestLoadFile_UnknownKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("thumbWdith: 64\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := DefaultConfig()
	if err := LoadFile(&cfg, path); err == nil {
		t.Fatal("LoadFile: want error for unknown key")
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "acextract.yaml")
	if err := os.WriteFile(path, []byte("mode: catalog\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := DefaultConfig()
	err := ParseFlags(&cfg, []string{"--config", path, "--mode", "themestore", "--list", "in.carchive"})
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.Mode != ModeThemeStore {
		t.Errorf("Mode: got %q, want themestore (flag beats file)", cfg.Mode)
	}
}
