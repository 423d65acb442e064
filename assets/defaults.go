package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default configuration.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// FishCompletion is installed as fish/completions/kitty.fish.
//
//go:embed completions/kitty.fish
var FishCompletion string
