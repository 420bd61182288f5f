package cli

import (
	"context"
	"testing"
)

func TestRun_Version(t *testing.T) {
	if err := Run(context.Background(), []string{"placesync", "version"}); err != nil {
		t.Fatalf("Run(version) error = %v", err)
	}
}

func TestRun_Paths(t *testing.T) {
	clearEnvOverrides(t)
	if err := Run(context.Background(),
		[]string{"placesync", "paths", "--base-dir", t.TempDir()}); err != nil {
		t.Fatalf("Run(paths) error = %v", err)
	}
}
