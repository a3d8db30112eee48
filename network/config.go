package network

import "fmt"

// ClientConfig holds the connection parameters for the chain-data service.
type ClientConfig struct {
	BaseURL string `json:"base_url"`
	Network string `json:"network"`
}

// Presets contains default API base URLs for known networks. Regtest is
// intentionally omitted: a local deployment always requires explicit
// configuration.
var Presets = map[string]ClientConfig{
	"mainnet": {BaseURL: "https://mempool.space/api"},
	"testnet": {BaseURL: "https://mempool.space/testnet/api"},
}

// ResolveConfig merges client configuration from three sources with
// decreasing priority:
//
//  1. explicit values (highest priority)
//  2. environment variables (HEIRLOOM_API_URL)
//  3. network presets (mainnet/testnet only)
func ResolveConfig(explicit *ClientConfig, env map[string]string, network string) (*ClientConfig, error) {
	result := ClientConfig{Network: network}

	if preset, ok := Presets[network]; ok {
		result = preset
		result.Network = network
	}

	if env != nil {
		if v, ok := env["HEIRLOOM_API_URL"]; ok && v != "" {
			result.BaseURL = v
		}
	}

	if explicit != nil && explicit.BaseURL != "" {
		result.BaseURL = explicit.BaseURL
	}

	if result.BaseURL == "" {
		return nil, fmt.Errorf("network: %s requires explicit API configuration (set BaseURL or HEIRLOOM_API_URL)", network)
	}

	return &result, nil
}
