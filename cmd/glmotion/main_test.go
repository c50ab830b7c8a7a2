package main

import (
	"path/filepath"
	"testing"
)

func TestRunExitCodesBeforeWindow(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want int
	}{
		{"help", []string{"-h"}, 0},
		{"unknown flag", []string{"-bogus"}, 2},
		{"missing config", []string{"-config", filepath.Join(t.TempDir(), "none.toml")}, 1},
		{"bad size", []string{"-width", "0"}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := run(tc.args); got != tc.want {
				t.Errorf("run(%v) = %d, want %d", tc.args, got, tc.want)
			}
		})
	}
}
