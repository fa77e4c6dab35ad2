package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/alnah/go-texprep/internal/fileutil"
	"github.com/alnah/go-texprep/internal/pipeline"
	"github.com/alnah/go-texprep/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidRule     = errors.New("invalid rule")
)

// Field length limits.
const (
	MaxEnvironmentLength = 64  // LaTeX environment name
	MaxCommandLength     = 64  // LaTeX command name, without backslash
	MaxDirLength         = 255 // single path prefix
	MaxExtensionLength   = 10  // "jpeg", "webp"
	MaxListLength        = 32  // aliases, dirs, extensions
)

// userConfigDirName is the directory searched under os.UserConfigDir.
const userConfigDirName = "texprep"

var (
	// commandName matches a LaTeX control word.
	commandName = regexp.MustCompile(`^[A-Za-z]+\*?$`)
	// markupChars cannot appear inside names used in markers or paths.
	markupChars = "{}\\%#"
)

// Config holds the rewrite rules of every stage.
type Config struct {
	Environment EnvironmentConfig `yaml:"environment"`
	Citations   CitationsConfig   `yaml:"citations"`
	Graphics    GraphicsConfig    `yaml:"graphics"`
}

// EnvironmentConfig defines the attributed quotation environment.
type EnvironmentConfig struct {
	Name    string   `yaml:"name"`    // e.g. "chapquote"
	Aliases []string `yaml:"aliases"` // misspellings fixed before rewriting
}

// CitationsConfig defines the citation command rename.
type CitationsConfig struct {
	From string `yaml:"from"` // without backslash, e.g. "cite"
	To   string `yaml:"to"`   // without backslash, e.g. "citet"
}

// GraphicsConfig defines image path normalization.
type GraphicsConfig struct {
	SourceDirs     []string `yaml:"sourceDirs"`     // folded into TargetDir
	TargetDir      string   `yaml:"targetDir"`      // canonical directory
	Extensions     []string `yaml:"extensions"`     // stripped, without dot
	ForceExtension string   `yaml:"forceExtension"` // appended, without dot
}

// DefaultConfig returns the configuration matching pipeline.DefaultRules.
func DefaultConfig() *Config {
	return FromRules(pipeline.DefaultRules())
}

// FromRules builds a Config from pipeline rules.
func FromRules(r pipeline.Rules) *Config {
	return &Config{
		Environment: EnvironmentConfig{
			Name:    r.Environment,
			Aliases: slices.Clone(r.EnvironmentAliases),
		},
		Citations: CitationsConfig{From: r.CiteFrom, To: r.CiteTo},
		Graphics: GraphicsConfig{
			SourceDirs:     slices.Clone(r.GraphicsSourceDirs),
			TargetDir:      r.GraphicsTargetDir,
			Extensions:     slices.Clone(r.GraphicsExtensions),
			ForceExtension: r.ForcedExtension,
		},
	}
}

// Rules converts the configuration to pipeline rules.
func (c *Config) Rules() pipeline.Rules {
	return pipeline.Rules{
		Environment:        c.Environment.Name,
		EnvironmentAliases: slices.Clone(c.Environment.Aliases),
		CiteFrom:           c.Citations.From,
		CiteTo:             c.Citations.To,
		GraphicsSourceDirs: slices.Clone(c.Graphics.SourceDirs),
		GraphicsTargetDir:  c.Graphics.TargetDir,
		GraphicsExtensions: slices.Clone(c.Graphics.Extensions),
		ForcedExtension:    c.Graphics.ForceExtension,
	}
}

// Validate checks that every rule produces well-formed markers and paths.
// Called automatically by LoadConfig, but available for callers who
// construct Config manually.
func (c *Config) Validate() error {
	// Environment
	if err := validateName("environment.name", c.Environment.Name, MaxEnvironmentLength); err != nil {
		return err
	}
	if err := validateListLength("environment.aliases", c.Environment.Aliases); err != nil {
		return err
	}
	for i, alias := range c.Environment.Aliases {
		if err := validateName(fmt.Sprintf("environment.aliases[%d]", i), alias, MaxEnvironmentLength); err != nil {
			return err
		}
	}

	// Citations
	if err := validateCommand("citations.from", c.Citations.From); err != nil {
		return err
	}
	if err := validateCommand("citations.to", c.Citations.To); err != nil {
		return err
	}
	if c.Citations.From == c.Citations.To {
		return fmt.Errorf("%w: citations.from and citations.to are both %q", ErrInvalidRule, c.Citations.From)
	}

	// Graphics
	if len(c.Graphics.SourceDirs) == 0 {
		return fmt.Errorf("%w: graphics.sourceDirs: at least one directory required", ErrInvalidRule)
	}
	if err := validateListLength("graphics.sourceDirs", c.Graphics.SourceDirs); err != nil {
		return err
	}
	for i, dir := range c.Graphics.SourceDirs {
		if err := validateDir(fmt.Sprintf("graphics.sourceDirs[%d]", i), dir); err != nil {
			return err
		}
	}
	if err := validateDir("graphics.targetDir", c.Graphics.TargetDir); err != nil {
		return err
	}
	if err := validateListLength("graphics.extensions", c.Graphics.Extensions); err != nil {
		return err
	}
	for i, ext := range c.Graphics.Extensions {
		if err := validateExtension(fmt.Sprintf("graphics.extensions[%d]", i), ext); err != nil {
			return err
		}
	}
	if err := validateExtension("graphics.forceExtension", c.Graphics.ForceExtension); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func validateListLength(fieldName string, values []string) error {
	if len(values) > MaxListLength {
		return fmt.Errorf("%w: %s (%d entries, max %d)", ErrFieldTooLong, fieldName, len(values), MaxListLength)
	}
	return nil
}

// validateName checks an environment name used inside \begin{...}.
func validateName(fieldName, value string, maxLength int) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s: required", ErrInvalidRule, fieldName)
	}
	if err := validateFieldLength(fieldName, value, maxLength); err != nil {
		return err
	}
	if strings.ContainsAny(value, markupChars) {
		return fmt.Errorf("%w: %s: %q contains markup characters", ErrInvalidRule, fieldName, value)
	}
	return nil
}

// validateCommand checks a LaTeX command name given without backslash.
func validateCommand(fieldName, value string) error {
	if err := validateFieldLength(fieldName, value, MaxCommandLength); err != nil {
		return err
	}
	if !commandName.MatchString(value) {
		return fmt.Errorf("%w: %s: %q is not a command name (letters only, no backslash)", ErrInvalidRule, fieldName, value)
	}
	return nil
}

// validateDir checks a directory prefix of an image path.
func validateDir(fieldName, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s: required", ErrInvalidRule, fieldName)
	}
	if err := validateFieldLength(fieldName, value, MaxDirLength); err != nil {
		return err
	}
	if strings.ContainsAny(value, markupChars) || strings.ContainsFunc(value, isSpace) {
		return fmt.Errorf("%w: %s: %q contains markup characters or whitespace", ErrInvalidRule, fieldName, value)
	}
	if strings.HasSuffix(value, "/") {
		return fmt.Errorf("%w: %s: %q must not end with a slash", ErrInvalidRule, fieldName, value)
	}
	return nil
}

// validateExtension checks an image extension given without dot.
func validateExtension(fieldName, value string) error {
	if err := fileutil.ValidateExtension(value); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidRule, fieldName, err)
	}
	if err := validateFieldLength(fieldName, value, MaxExtensionLength); err != nil {
		return err
	}
	if strings.ContainsAny(value, "."+markupChars) || strings.ContainsFunc(value, isSpace) {
		return fmt.Errorf("%w: %s: %q must be a bare extension without dot", ErrInvalidRule, fieldName, value)
	}
	return nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// LoadConfig loads rules from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched in standard locations.
// Keys absent from the file keep their default values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	path, err := ResolvePath(nameOrPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var file Config
	if err := yamlutil.Decode(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}

	cfg := DefaultConfig()
	cfg.merge(&file)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// merge overwrites c with every field set in other.
// A list present in other replaces the default list.
func (c *Config) merge(other *Config) {
	if other.Environment.Name != "" {
		c.Environment.Name = other.Environment.Name
	}
	if other.Environment.Aliases != nil {
		c.Environment.Aliases = other.Environment.Aliases
	}
	if other.Citations.From != "" {
		c.Citations.From = other.Citations.From
	}
	if other.Citations.To != "" {
		c.Citations.To = other.Citations.To
	}
	if other.Graphics.SourceDirs != nil {
		c.Graphics.SourceDirs = other.Graphics.SourceDirs
	}
	if other.Graphics.TargetDir != "" {
		c.Graphics.TargetDir = other.Graphics.TargetDir
	}
	if other.Graphics.Extensions != nil {
		c.Graphics.Extensions = other.Graphics.Extensions
	}
	if other.Graphics.ForceExtension != "" {
		c.Graphics.ForceExtension = other.Graphics.ForceExtension
	}
}

// ResolvePath returns the file a config name or path refers to.
// Values containing a separator or a YAML extension are paths; other
// values are names looked up with SearchPaths.
func ResolvePath(nameOrPath string) (string, error) {
	if nameOrPath == "" {
		return "", ErrEmptyConfigName
	}
	if fileutil.IsFilePath(nameOrPath) || hasYAMLExtension(nameOrPath) {
		return nameOrPath, nil
	}

	triedPaths := SearchPaths(nameOrPath)
	for _, p := range triedPaths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// SearchPaths lists the candidate files for a config name in lookup order:
// <name>.yaml and <name>.yml in the current directory, then in the user
// config directory (e.g. ~/.config/texprep/).
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, userConfigDirName, name+ext))
		}
	}

	return paths
}

func hasYAMLExtension(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}
