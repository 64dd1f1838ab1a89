// Package config resolves the startup settings from the environment,
// command line flags and, for anything still missing, interactive prompts.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"dicesim/internal/dice"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
)

const (
	// DefaultHistorySize is how many recent totals are kept on screen.
	DefaultHistorySize = 10
)

// Settings is the merged startup configuration. FaceSet and Count hold the
// raw user text; normalization happens in DiceConfig.
type Settings struct {
	FaceSet     string `env:"DICESIM_FACE_SET"`
	Count       string `env:"DICESIM_COUNT"`
	AssetDir    string `env:"DICESIM_ASSET_DIR"`
	Seed        uint64 `env:"DICESIM_SEED"`
	HistorySize int    `env:"DICESIM_HISTORY_SIZE" envDefault:"10"`
	LogLevel    string `env:"DICESIM_LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"DICESIM_LOG_FORMAT" envDefault:"console"`
	NoPrompt    bool   `env:"DICESIM_NO_PROMPT"`
}

// FromEnv loads Settings from environment variables.
func FromEnv() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}

// ParseCount parses a requested dice count. Non-numeric input yields 1 and
// ok=false. The result is not clamped.
func ParseCount(s string) (n int, ok bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 1, false
	}
	return n, true
}

// DiceConfig turns the raw face set and count into a normalized dice.Config.
// Recovered input problems are logged at debug level only.
func (s Settings) DiceConfig(logger *zap.Logger) dice.Config {
	count, ok := ParseCount(s.Count)
	if !ok && logger != nil {
		logger.Debug("count is not a number, using 1", zap.String("input", s.Count))
	}
	cfg := dice.NewConfig(s.FaceSet, count)
	if logger != nil {
		if cfg.Count() != count {
			logger.Debug("count clamped", zap.Int("requested", count), zap.Int("effective", cfg.Count()))
		}
		if string(cfg.FaceSet()) != strings.ToUpper(strings.TrimSpace(s.FaceSet)) {
			logger.Debug("unknown face set, using default",
				zap.String("input", s.FaceSet), zap.String("effective", string(cfg.FaceSet())))
		}
	}
	return cfg
}

// Prompter asks for missing values on a line-oriented terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter reading from in and writing prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask prints question and returns the trimmed answer. End of input is an
// empty answer, not an error.
func (p *Prompter) Ask(question string) (string, error) {
	if _, err := fmt.Fprint(p.out, question); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// FillMissing prompts for the face set and count when they were not given by
// flag or environment. With NoPrompt set, or a nil prompter, the defaults
// apply instead.
func (s *Settings) FillMissing(p *Prompter) error {
	if s.NoPrompt || p == nil {
		return nil
	}
	if s.FaceSet == "" {
		answer, err := p.Ask(fmt.Sprintf("Enter dice type (%s or %s): ", dice.FaceSetQ, dice.FaceSetW))
		if err != nil {
			return err
		}
		s.FaceSet = answer
	}
	if s.Count == "" {
		answer, err := p.Ask(fmt.Sprintf("Enter number of dice (%d-%d): ", dice.MinCount, dice.MaxCount))
		if err != nil {
			return err
		}
		s.Count = answer
	}
	return nil
}

// Validate checks the non-dice settings. Dice input never fails validation.
func (s Settings) Validate() error {
	if s.HistorySize < 0 {
		return fmt.Errorf("history size must not be negative, got %d", s.HistorySize)
	}
	return nil
}
