package config

import "errors"

var (
	// ErrInvalidNetwork indicates the network name is not recognized.
	ErrInvalidNetwork = errors.New("config: invalid network (must be \"mainnet\", \"testnet\", or \"regtest\")")

	// ErrInvalidFeeTier indicates the default fee tier is not recognized.
	ErrInvalidFeeTier = errors.New("config: invalid fee tier (must be \"fastest\", \"halfHour\", or \"hour\")")

	// ErrInvalidAPIBaseURL indicates the API base URL is malformed.
	ErrInvalidAPIBaseURL = errors.New("config: invalid API base URL")

	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigLine indicates a line in the config file is malformed.
	ErrInvalidConfigLine = errors.New("config: invalid configuration line")
)
