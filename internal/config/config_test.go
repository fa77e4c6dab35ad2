package config

// Notes:
// - ResolvePath user-config-dir lookup is tested by pointing XDG_CONFIG_HOME
//   (Linux) / HOME at a temp dir; those tests cannot run in parallel.
// - The os.ReadFile non-NotExist error branch is not tested: it needs
//   platform-specific permission tricks.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/alnah/go-texprep/internal/pipeline"
)

// writeConfig writes content to name inside a fresh temp dir and returns its path.
func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestDefaultConfig - Defaults mirror pipeline rules
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	got := cfg.Rules()
	want := pipeline.DefaultRules()

	if got.Environment != want.Environment ||
		got.CiteFrom != want.CiteFrom ||
		got.CiteTo != want.CiteTo ||
		got.GraphicsTargetDir != want.GraphicsTargetDir ||
		got.ForcedExtension != want.ForcedExtension ||
		!slices.Equal(got.EnvironmentAliases, want.EnvironmentAliases) ||
		!slices.Equal(got.GraphicsSourceDirs, want.GraphicsSourceDirs) ||
		!slices.Equal(got.GraphicsExtensions, want.GraphicsExtensions) {
		t.Errorf("Rules() = %+v, want %+v", got, want)
	}
}

func TestRules_DoesNotAlias(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	r := cfg.Rules()
	r.GraphicsSourceDirs[0] = "mutated"

	if cfg.Graphics.SourceDirs[0] == "mutated" {
		t.Error("Rules() should copy slices")
	}
}

// ---------------------------------------------------------------------------
// TestValidate - Rule validation
// ---------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"valid defaults", func(c *Config) {}, nil},
		{"custom valid", func(c *Config) {
			c.Environment.Name = "epigraph"
			c.Citations.To = "citealt"
			c.Graphics.TargetDir = "build/img"
			c.Graphics.ForceExtension = "webp"
		}, nil},
		{"empty environment", func(c *Config) { c.Environment.Name = "" }, ErrInvalidRule},
		{"environment with brace", func(c *Config) { c.Environment.Name = "chap}quote" }, ErrInvalidRule},
		{"environment too long", func(c *Config) { c.Environment.Name = strings.Repeat("a", MaxEnvironmentLength+1) }, ErrFieldTooLong},
		{"blank alias", func(c *Config) { c.Environment.Aliases = []string{" "} }, ErrInvalidRule},
		{"too many aliases", func(c *Config) { c.Environment.Aliases = slices.Repeat([]string{"x"}, MaxListLength+1) }, ErrFieldTooLong},
		{"citation with backslash", func(c *Config) { c.Citations.From = `\cite` }, ErrInvalidRule},
		{"citation with digit", func(c *Config) { c.Citations.To = "cite2" }, ErrInvalidRule},
		{"citation starred", func(c *Config) { c.Citations.To = "citet*" }, nil},
		{"citation identical", func(c *Config) { c.Citations.To = "cite" }, ErrInvalidRule},
		{"no source dirs", func(c *Config) { c.Graphics.SourceDirs = nil }, ErrInvalidRule},
		{"source dir with space", func(c *Config) { c.Graphics.SourceDirs = []string{"my dir"} }, ErrInvalidRule},
		{"empty target dir", func(c *Config) { c.Graphics.TargetDir = "" }, ErrInvalidRule},
		{"target dir trailing slash", func(c *Config) { c.Graphics.TargetDir = "figures/" }, ErrInvalidRule},
		{"extension with dot", func(c *Config) { c.Graphics.Extensions = []string{".pdf"} }, ErrInvalidRule},
		{"extension with separator", func(c *Config) { c.Graphics.Extensions = []string{"a/b"} }, ErrInvalidRule},
		{"empty forced extension", func(c *Config) { c.Graphics.ForceExtension = "" }, ErrInvalidRule},
		{"forced extension too long", func(c *Config) { c.Graphics.ForceExtension = "abcdefghijk" }, ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - Loading from files
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("full file", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "rules.yaml", `
environment:
  name: epigraph
  aliases: ["epi graph"]
citations:
  from: cite
  to: citealt
graphics:
  sourceDirs: [Figs]
  targetDir: img
  extensions: [pdf, eps]
  forceExtension: svg
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Environment.Name != "epigraph" {
			t.Errorf("Environment.Name = %q, want epigraph", cfg.Environment.Name)
		}
		if !slices.Equal(cfg.Environment.Aliases, []string{"epi graph"}) {
			t.Errorf("Aliases = %v", cfg.Environment.Aliases)
		}
		if cfg.Citations.To != "citealt" {
			t.Errorf("Citations.To = %q, want citealt", cfg.Citations.To)
		}
		if !slices.Equal(cfg.Graphics.SourceDirs, []string{"Figs"}) {
			t.Errorf("SourceDirs = %v, want [Figs]", cfg.Graphics.SourceDirs)
		}
		if cfg.Graphics.ForceExtension != "svg" {
			t.Errorf("ForceExtension = %q, want svg", cfg.Graphics.ForceExtension)
		}
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "rules.yml", "graphics:\n  forceExtension: jpg\n")
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := DefaultConfig()
		want.Graphics.ForceExtension = "jpg"
		if cfg.Graphics.ForceExtension != "jpg" ||
			cfg.Graphics.TargetDir != want.Graphics.TargetDir ||
			cfg.Environment.Name != want.Environment.Name ||
			!slices.Equal(cfg.Graphics.SourceDirs, want.Graphics.SourceDirs) {
			t.Errorf("LoadConfig() = %+v, want %+v", cfg, want)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "rules.yaml", "graphics:\n  targetDirectory: img\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "rules.yaml", "")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid rule", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "rules.yaml", "citations:\n  to: cite\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidRule) {
			t.Errorf("error = %v, want ErrInvalidRule", err)
		}
		if err != nil && !strings.Contains(err.Error(), path) {
			t.Errorf("error %q should name the file", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolvePath - Name lookup in standard locations
// ---------------------------------------------------------------------------

func TestResolvePath_PathsReturnedAsIs(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"./rules", "conf/rules.yaml", "rules.yml", "RULES.YAML"} {
		got, err := ResolvePath(in)
		if err != nil || got != in {
			t.Errorf("ResolvePath(%q) = %q, %v; want %q, nil", in, got, err, in)
		}
	}
}

func TestResolvePath_UserConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME lookup is Linux-specific")
	}

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	dir := filepath.Join(home, userConfigDirName)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "book.yml")
	if err := os.WriteFile(want, []byte("citations:\n  to: citealt\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ResolvePath("book")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("ResolvePath() = %q, want %q", got, want)
	}

	cfg, err := LoadConfig("book")
	if err != nil {
		t.Fatalf("LoadConfig(name) error: %v", err)
	}
	if cfg.Citations.To != "citealt" {
		t.Errorf("Citations.To = %q, want citealt", cfg.Citations.To)
	}
}

func TestResolvePath_NotFoundListsTriedPaths(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME lookup is Linux-specific")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := ResolvePath("texprep-test-no-such-config")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("error = %v, want ErrConfigNotFound", err)
	}
	for _, want := range []string{"texprep-test-no-such-config.yaml", "texprep-test-no-such-config.yml", userConfigDirName} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %q", err, want)
		}
	}
}

func TestSearchPaths(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME lookup is Linux-specific")
	}
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	got := SearchPaths("book")
	want := []string{
		"book.yaml",
		"book.yml",
		filepath.Join(home, userConfigDirName, "book.yaml"),
		filepath.Join(home, userConfigDirName, "book.yml"),
	}
	if !slices.Equal(got, want) {
		t.Errorf("SearchPaths() = %v, want %v", got, want)
	}
}
