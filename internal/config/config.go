package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	ArchiveDir string `toml:"archive_dir"`
	LogDir     string `toml:"log_dir"`
}

// Speech contains configuration for the Whisper-compatible transcription API.
type Speech struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	Language       string `toml:"language"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Summarizer contains configuration for chunked transcript summarization.
type Summarizer struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	MaxChunkTokens int    `toml:"max_chunk_tokens"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Transcripts contains configuration for the official transcript and
// show-notes repositories.
type Transcripts struct {
	TranscriptsBaseURL string `toml:"transcripts_base_url"`
	NotesBaseURL       string `toml:"notes_base_url"`
	TimeoutSeconds     int    `toml:"timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config is the root configuration shared by every subcommand.
type Config struct {
	Paths       Paths       `toml:"paths"`
	Speech      Speech      `toml:"speech"`
	Summarizer  Summarizer  `toml:"summarizer"`
	Transcripts Transcripts `toml:"transcripts"`
	Logging     Logging     `toml:"logging"`
}

// Load reads configuration from path, falling back to well-known locations and
// repository defaults. It returns the resolved config, the path considered,
// and whether a file existed there.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/chlog/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("chlog.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.ArchiveDir, err = expandPath(c.Paths.ArchiveDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}
	c.Speech.Model = strings.TrimSpace(c.Speech.Model)
	if c.Speech.Model == "" {
		c.Speech.Model = defaultSpeechModel
	}
	if c.Speech.TimeoutSeconds <= 0 {
		c.Speech.TimeoutSeconds = defaultSpeechTimeoutSeconds
	}
	c.Summarizer.Model = strings.TrimSpace(c.Summarizer.Model)
	if c.Summarizer.Model == "" {
		c.Summarizer.Model = defaultSummarizerModel
	}
	if c.Summarizer.MaxChunkTokens <= 0 {
		c.Summarizer.MaxChunkTokens = defaultMaxChunkTokens
	}
	if c.Summarizer.TimeoutSeconds <= 0 {
		c.Summarizer.TimeoutSeconds = defaultSummarizerTimeoutSeconds
	}
	c.Transcripts.TranscriptsBaseURL = strings.TrimRight(strings.TrimSpace(c.Transcripts.TranscriptsBaseURL), "/")
	if c.Transcripts.TranscriptsBaseURL == "" {
		c.Transcripts.TranscriptsBaseURL = defaultTranscriptsBaseURL
	}
	c.Transcripts.NotesBaseURL = strings.TrimRight(strings.TrimSpace(c.Transcripts.NotesBaseURL), "/")
	if c.Transcripts.NotesBaseURL == "" {
		c.Transcripts.NotesBaseURL = defaultNotesBaseURL
	}
	if c.Transcripts.TimeoutSeconds <= 0 {
		c.Transcripts.TimeoutSeconds = defaultTranscriptsTimeoutSeconds
	}
	return nil
}

// Validate checks configuration invariants that would otherwise surface as
// confusing runtime failures.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.ArchiveDir) == "" {
		return errors.New("config: archive_dir must not be empty")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("config: log_dir must not be empty")
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: logging format %q is not supported", c.Logging.Format)
	}
	return nil
}

// EnsureDirectories creates the directories the pipeline writes to.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.ArchiveDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// StateDBPath returns the location of the archive state database.
func (c *Config) StateDBPath() string {
	return filepath.Join(c.Paths.LogDir, "archive.db")
}

// ShowDir returns the directory holding downloads for the given show folder
// name.
func (c *Config) ShowDir(folder string) string {
	return filepath.Join(c.Paths.ArchiveDir, folder)
}

// Sample returns the embedded sample configuration document.
func Sample() string {
	return sampleConfig
}

// CreateSample writes the embedded sample configuration to path.
func CreateSample(path string) error {
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

// DefaultConfigPath returns the per-user configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/chlog/config.toml")
}

// ExpandPath resolves ~ and relative segments in a user-supplied path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			return home, nil
		}
		return filepath.Join(home, trimmed[2:]), nil
	}
	return filepath.Abs(trimmed)
}
