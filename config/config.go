// Package config holds the wallet's runtime configuration: network choice,
// chain-data endpoint, default fee tier, and local data directory, persisted
// as a simple key=value file.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
)

// Config holds all runtime configuration values.
type Config struct {
	// DataDir is where local state (inheritance plans, encrypted seed)
	// lives.
	DataDir string

	// Network selects the chain: "mainnet", "testnet", or "regtest".
	Network string

	// APIBaseURL overrides the chain-data endpoint. Empty means the
	// network's preset endpoint.
	APIBaseURL string

	// DefaultFeeTier is the fee tier used when a send names none.
	DefaultFeeTier string

	// RefreshGraceSeconds is the delay between a successful broadcast and
	// the scheduled wallet refresh.
	RefreshGraceSeconds uint32
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DataDir:             filepath.Join(home, ".heirloom"),
		Network:             "mainnet",
		DefaultFeeTier:      "halfHour",
		RefreshGraceSeconds: 5,
	}
}

// Params returns the chain parameters for the configured network.
func (c Config) Params() (*chaincfg.Params, error) {
	switch c.Network {
	case "mainnet":
		return &chaincfg.MainNetParams, nil
	case "testnet":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	default:
		return nil, ErrInvalidNetwork
	}
}

// LoadConfig reads a key=value configuration file. Blank lines and lines
// starting with '#' are ignored. Unknown keys are an error so typos do not
// pass silently.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, ErrConfigNotFound
		}
		return cfg, fmt.Errorf("config: open: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, lineNo, line)
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)

		switch key {
		case "datadir":
			cfg.DataDir = value
		case "network":
			cfg.Network = value
		case "apibaseurl":
			cfg.APIBaseURL = value
		case "defaultfeetier":
			cfg.DefaultFeeTier = value
		case "refreshgraceseconds":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return cfg, fmt.Errorf("%w: line %d: refreshgraceseconds %q", ErrInvalidConfigLine, lineNo, value)
			}
			cfg.RefreshGraceSeconds = uint32(v)
		default:
			return cfg, fmt.Errorf("%w: line %d: unknown key %q", ErrInvalidConfigLine, lineNo, key)
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("config: read: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the configuration as a key=value file, creating parent
// directories as needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "datadir=%s\n", cfg.DataDir)
	fmt.Fprintf(&b, "network=%s\n", cfg.Network)
	fmt.Fprintf(&b, "apibaseurl=%s\n", cfg.APIBaseURL)
	fmt.Fprintf(&b, "defaultfeetier=%s\n", cfg.DefaultFeeTier)
	fmt.Fprintf(&b, "refreshgraceseconds=%d\n", cfg.RefreshGraceSeconds)

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: write: %w", err)
	}
	return nil
}
