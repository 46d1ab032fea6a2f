package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/apmatch/pkg/errors"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yaml")
	data := `
- invoice: invoices/inv-001.yaml
  po: pos/po-001.yaml
- invoice: invoices/inv-002.yaml
  po: pos/po-002.yaml
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	entries, err := loadManifest(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "invoices/inv-001.yaml", entries[0].Invoice)
	assert.Equal(t, "pos/po-002.yaml", entries[1].PO)
}

func TestLoadManifestRejectsIncompleteEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- invoice: only-half.yaml\n"), 0o644))

	_, err := loadManifest(path)
	assert.True(t, errors.IsValidationError(err))
}

func TestLoadManifestRejectsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("[]\n"), 0o644))

	_, err := loadManifest(path)
	assert.True(t, errors.IsValidationError(err))
}

func TestLoadManifestMissingFile(t *testing.T) {
	_, err := loadManifest(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestExitCodeError(t *testing.T) {
	err := &exitCodeError{code: exitReview}
	assert.Equal(t, "exit code 1", err.Error())
}
