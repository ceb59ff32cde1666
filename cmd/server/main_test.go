package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMigrateCommandIsIdempotent(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", filepath.Join(t.TempDir(), "onboarding.db"))
	t.Setenv("LOG_LEVEL", "error")

	out, err := runCLI(t, "migrate")
	require.NoError(t, err, out)
	assert.Contains(t, out, "applied 001_employee_schema")

	out, err = runCLI(t, "migrate")
	require.NoError(t, err, out)
	assert.Contains(t, out, "schema is up to date (sqlite)")
}

func TestMigrateCommandReportsConfigErrors(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	out, err := runCLI(t, "migrate")
	assert.Error(t, err)
	assert.Contains(t, out, "DATABASE_URL is required")
}

func TestUnknownConfigFile(t *testing.T) {
	out, err := runCLI(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "migrate")
	assert.Error(t, err)
	assert.Contains(t, out, "Error:")
}
