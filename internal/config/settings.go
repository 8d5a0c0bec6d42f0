package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxEvalDepth    = 10000
	DefaultSandboxMaxBytes = 64 << 20
	DefaultMaxArrayLen     = 1 << 24
)

type LexerSettings struct {
	// Strict turns unknown characters into lexical errors instead of
	// skipping them.
	Strict bool `yaml:"strict" mapstructure:"strict"`
}

type SandboxSettings struct {
	MaxBytes      int  `yaml:"max_bytes" mapstructure:"max_bytes"`
	AllowSyscalls bool `yaml:"allow_syscalls" mapstructure:"allow_syscalls"`
	AllowNative   bool `yaml:"allow_native" mapstructure:"allow_native"`
}

type EvalSettings struct {
	MaxDepth int `yaml:"max_depth" mapstructure:"max_depth"`
	// MaxArrayLen caps how far index assignment and range() may grow an
	// array. Zero means no limit.
	MaxArrayLen int `yaml:"max_array_len" mapstructure:"max_array_len"`
}

// Settings is the interpreter configuration, usually read from .ollang.yaml.
type Settings struct {
	ImportPaths []string        `yaml:"import_paths" mapstructure:"import_paths"`
	Lexer       LexerSettings   `yaml:"lexer" mapstructure:"lexer"`
	Sandbox     SandboxSettings `yaml:"sandbox" mapstructure:"sandbox"`
	Eval        EvalSettings    `yaml:"eval" mapstructure:"eval"`
	LogLevel    string          `yaml:"log_level" mapstructure:"log_level"`
}

func DefaultSettings() *Settings {
	return &Settings{
		Lexer: LexerSettings{Strict: true},
		Sandbox: SandboxSettings{
			MaxBytes:      DefaultSandboxMaxBytes,
			AllowSyscalls: true,
			AllowNative:   true,
		},
		Eval:     EvalSettings{MaxDepth: DefaultMaxEvalDepth, MaxArrayLen: DefaultMaxArrayLen},
		LogLevel: "warn",
	}
}

// LoadSettings reads a YAML settings file on top of the defaults.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}
	return ParseSettings(data)
}

// ParseSettings decodes YAML settings on top of the defaults.
func ParseSettings(data []byte) (*Settings, error) {
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) Validate() error {
	if s.Sandbox.MaxBytes < 0 {
		return fmt.Errorf("sandbox.max_bytes must not be negative")
	}
	if s.Eval.MaxDepth <= 0 {
		return fmt.Errorf("eval.max_depth must be positive")
	}
	if s.Eval.MaxArrayLen < 0 {
		return fmt.Errorf("eval.max_array_len must not be negative")
	}
	return nil
}

func (s *Settings) Clone() *Settings {
	c := *s
	c.ImportPaths = append([]string(nil), s.ImportPaths...)
	return &c
}
