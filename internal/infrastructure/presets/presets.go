// Package presets loads the shortcut wallets offered next to the search box
package presets

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/bimakw/polywallet/internal/domain/entities"
)

// Preset is a labelled wallet shortcut
type Preset struct {
	Label  string `yaml:"label" json:"label"`
	Wallet string `yaml:"wallet" json:"wallet"`
}

type file struct {
	Presets []Preset `yaml:"presets"`
}

// Load reads presets from a YAML file. An empty path yields no presets.
// Entries with an invalid wallet are skipped and logged.
func Load(path string, logger *zap.Logger) ([]Preset, error) {
	if path == "" {
		return []Preset{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}
	return Parse(data, logger)
}

// Parse decodes presets from YAML, normalizing every wallet
func Parse(data []byte, logger *zap.Logger) ([]Preset, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}

	presets := make([]Preset, 0, len(f.Presets))
	for _, p := range f.Presets {
		wallet, err := entities.ValidateWallet(p.Wallet)
		if err != nil {
			logger.Warn("Skipping preset with invalid wallet",
				zap.String("label", p.Label),
				zap.Error(err),
			)
			continue
		}
		if p.Label == "" {
			p.Label = wallet[:6] + "…" + wallet[len(wallet)-4:]
		}
		p.Wallet = wallet
		presets = append(presets, p)
	}
	return presets, nil
}
