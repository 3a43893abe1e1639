package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-probe/internal/types"
)

const validDescriptorJSON = `{
	"name": "demo-ats",
	"entry_url": "https://ats.example.com/apply",
	"selectors": {
		"upload": "input[type=file]",
		"firstName": "#first-name",
		"email": "#email"
	},
	"thresholds": {"tabular": 80, "itemized": 65},
	"confirmation_selector": ".upload-done",
	"processing_wait_seconds": 5
}`

func descriptorSchemaPath(t *testing.T) string {
	t.Helper()
	path := ResolveSchemaPath(DescriptorSchemaPath)
	require.NotEmpty(t, path, "descriptor schema not found")
	return path
}

func writeDescriptor(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadDescriptors_Valid(t *testing.T) {
	dir := t.TempDir()
	writeDescriptor(t, dir, "demo.json", validDescriptorJSON)

	descriptors, err := LoadDescriptors(dir, descriptorSchemaPath(t))
	require.NoError(t, err)
	require.Len(t, descriptors, 1)

	d := descriptors[0]
	assert.Equal(t, "demo-ats", d.Name)
	assert.Equal(t, "https://ats.example.com/apply", d.EntryURL)
	assert.Equal(t, 80.0, d.Thresholds[types.VariantTabular])
	assert.Equal(t, 65.0, d.Thresholds[types.VariantItemized])
	assert.Equal(t, ".upload-done", d.ConfirmationSelector)
	assert.Equal(t, 5, d.ProcessingWaitSeconds)
}

func TestLoadDescriptors_SortedByFileName(t *testing.T) {
	dir := t.TempDir()
	writeDescriptor(t, dir, "b.json", validDescriptorJSON)
	first := `{
		"name": "first-ats",
		"entry_url": "https://first.example.com/apply",
		"selectors": {"upload": "input[type=file]", "email": "#email"}
	}`
	writeDescriptor(t, dir, "a.json", first)

	descriptors, err := LoadDescriptors(dir, descriptorSchemaPath(t))
	require.NoError(t, err)
	require.Len(t, descriptors, 2)
	assert.Equal(t, "first-ats", descriptors[0].Name)
	assert.Equal(t, "demo-ats", descriptors[1].Name)
}

func TestLoadDescriptors_IgnoresNonJSONFiles(t *testing.T) {
	dir := t.TempDir()
	writeDescriptor(t, dir, "demo.json", validDescriptorJSON)
	writeDescriptor(t, dir, "README.md", "notes")

	descriptors, err := LoadDescriptors(dir, descriptorSchemaPath(t))
	require.NoError(t, err)
	assert.Len(t, descriptors, 1)
}

func TestLoadDescriptors_RejectsMissingUploadSelector(t *testing.T) {
	dir := t.TempDir()
	writeDescriptor(t, dir, "bad.json", `{
		"name": "bad-ats",
		"entry_url": "https://ats.example.com/apply",
		"selectors": {"firstName": "#first-name", "email": "#email"}
	}`)

	_, err := LoadDescriptors(dir, descriptorSchemaPath(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.json")
}

func TestLoadDescriptors_RejectsThresholdOutOfRange(t *testing.T) {
	dir := t.TempDir()
	writeDescriptor(t, dir, "bad.json", `{
		"name": "bad-ats",
		"entry_url": "https://ats.example.com/apply",
		"selectors": {"upload": "input[type=file]", "email": "#email"},
		"thresholds": {"tabular": 140}
	}`)

	_, err := LoadDescriptors(dir, descriptorSchemaPath(t))
	assert.Error(t, err)
}

func TestLoadDescriptors_RejectsUnknownProperty(t *testing.T) {
	dir := t.TempDir()
	writeDescriptor(t, dir, "bad.json", `{
		"name": "bad-ats",
		"entry_url": "https://ats.example.com/apply",
		"selectors": {"upload": "input[type=file]", "email": "#email"},
		"vendor": "acme"
	}`)

	_, err := LoadDescriptors(dir, descriptorSchemaPath(t))
	assert.Error(t, err)
}

func TestLoadDescriptors_EmptyDirectory(t *testing.T) {
	_, err := LoadDescriptors(t.TempDir(), descriptorSchemaPath(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no target descriptors")
}

func TestLoadDescriptors_MissingSchema(t *testing.T) {
	dir := t.TempDir()
	writeDescriptor(t, dir, "demo.json", validDescriptorJSON)

	_, err := LoadDescriptors(dir, filepath.Join(t.TempDir(), "missing.schema.json"))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}
