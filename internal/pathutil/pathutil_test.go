package pathutil

import (
	"path/filepath"
	"testing"
)

func TestResolveDefault(t *testing.T) {
	got := Resolve("/repo", "")
	if got != filepath.Join("/repo", "pricing") {
		t.Fatalf("unexpected default dir: %s", got)
	}
}

func TestResolveRelativeOverride(t *testing.T) {
	got := Resolve("/repo", "prices")
	if got != filepath.Join("/repo", "prices") {
		t.Fatalf("unexpected relative override: %s", got)
	}
}

func TestResolveAbsoluteOverride(t *testing.T) {
	got := Resolve("/repo", "/elsewhere/pricing/")
	if got != "/elsewhere/pricing" {
		t.Fatalf("unexpected absolute override: %s", got)
	}
}

func TestPricingDirEnvOverride(t *testing.T) {
	t.Setenv(EnvPricingDir, "custom")
	got := PricingDir("/repo", "")
	if got != filepath.Join("/repo", "custom") {
		t.Fatalf("unexpected env override: %s", got)
	}
}

func TestPricingDirFlagBeatsEnv(t *testing.T) {
	t.Setenv(EnvPricingDir, "custom")
	got := PricingDir("/repo", "explicit")
	if got != filepath.Join("/repo", "explicit") {
		t.Fatalf("unexpected override precedence: %s", got)
	}
}
