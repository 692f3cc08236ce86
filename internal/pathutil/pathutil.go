package pathutil

import (
	"os"
	"path/filepath"
)

// DefaultPricingDir is the directory name used when no override is given.
const DefaultPricingDir = "pricing"

// EnvPricingDir is the environment variable that overrides the pricing
// directory.
const EnvPricingDir = "PRICING_DIR"

// Normalize returns a canonical filesystem path string.
// It removes trailing slashes, collapses "." and "..", and
// preserves relative paths when provided.
func Normalize(path string) string {
	if path == "" {
		return path
	}
	return filepath.Clean(path)
}

// Resolve returns the pricing directory for a repository root and an
// optional override. An absolute override is used verbatim; a relative one
// is joined to the root. An empty override falls back to DefaultPricingDir.
func Resolve(root, override string) string {
	dir := override
	if dir == "" {
		dir = DefaultPricingDir
	}
	if filepath.IsAbs(dir) {
		return Normalize(dir)
	}
	return Normalize(filepath.Join(root, dir))
}

// PricingDir resolves the pricing directory using the PRICING_DIR
// environment variable when no explicit override is given.
func PricingDir(root, override string) string {
	if override == "" {
		override = os.Getenv(EnvPricingDir)
	}
	return Resolve(root, override)
}
