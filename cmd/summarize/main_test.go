package main

import (
	"bytes"
	"testing"
)

func TestRootCmdRequiresPaths(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error when no paths are given")
	}
}

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"output", "pdf", "model", "endpoint", "provider", "store-dsn", "quiet"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag --%s to be registered", name)
		}
	}
	if cmd.Flags().ShorthandLookup("o") == nil {
		t.Error("expected -o shorthand for --output")
	}
	if cmd.Flags().ShorthandLookup("q") == nil {
		t.Error("expected -q shorthand for --quiet")
	}
}
