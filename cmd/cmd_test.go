package queuemailercmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lumeweb.com/queuemailer/config"
	"go.lumeweb.com/queuemailer/core"
	"go.lumeweb.com/queuemailer/db"
	"go.lumeweb.com/queuemailer/db/models"
)

const templatesYAML = `
- name: welcome
  language: en
  subject: Welcome
  body: "Hello {{.name}}!"
- name: welcome
  language: de
  subject: Willkommen
  body: "Hallo {{.name}}!"
  from: team@example.com
`

func setupCLI(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()

	cfgFile := filepath.Join(dir, "queuemailer.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(`
core:
  log:
    level: error
  mail:
    default_sender: noreply@example.com
  db:
    type: sqlite
    file: queuemailer.db
`), 0644))

	tplFile := filepath.Join(dir, "templates.yaml")
	require.NoError(t, os.WriteFile(tplFile, []byte(templatesYAML), 0644))

	return cfgFile, tplFile
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := newRootCmd(false)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

func TestCLIImportListStage(t *testing.T) {
	cfgFile, tplFile := setupCLI(t)

	out, err := execute(t, "--config", cfgFile, "templates", "import", tplFile)
	require.NoError(t, err)
	assert.Equal(t, "imported 2 templates\n", out)

	out, err = execute(t, "--config", cfgFile, "templates", "list", "--language", "de")
	require.NoError(t, err)
	assert.Contains(t, out, "Willkommen")
	assert.NotContains(t, out, "Welcome")

	out, err = execute(t, "--config", cfgFile, "preview", "-t", "welcome", "--to", "user@example.com", "-p", "name=Ann")
	require.NoError(t, err)
	assert.Contains(t, out, "Subject: Welcome")
	assert.Contains(t, out, "Hello Ann!")

	out, err = execute(t, "--config", cfgFile, "stage", "-t", "welcome", "-l", "de", "--to", "user@example.com", "-p", "name=Ann")
	require.NoError(t, err)
	id := strings.TrimSpace(out)

	gdb, err := db.OpenDatabase(config.DatabaseConfig{Type: "sqlite", File: "queuemailer.db"}, filepath.Dir(cfgFile), core.NewNopLogger())
	require.NoError(t, err)

	var row models.Email
	require.NoError(t, gdb.Where(&models.Email{MessageID: id}).First(&row).Error)
	assert.Equal(t, "team@example.com", row.Sender)
	assert.Equal(t, "user@example.com", row.Recipient)
	assert.Equal(t, "Hallo Ann!", row.Body)
}

func TestCLIStageWithoutTemplate(t *testing.T) {
	cfgFile, _ := setupCLI(t)

	out, err := execute(t, "--config", cfgFile, "stage", "--to", "user@example.com", "--subject", "Ping", "--body", "pong")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))
}

func TestCLIErrors(t *testing.T) {
	cfgFile, _ := setupCLI(t)

	_, err := execute(t, "--config", cfgFile, "preview", "-t", "missing", "--to", "user@example.com")
	assert.ErrorIs(t, err, core.ErrTemplateNotFound)

	_, err = execute(t, "--config", cfgFile, "stage", "--to", "not-an-email", "--subject", "Ping", "--body", "pong")
	assert.ErrorIs(t, err, core.ErrInvalidAddress)

	_, err = execute(t, "--config", cfgFile, "stage", "--to", "user@example.com")
	assert.Error(t, err)
}

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"name=Ann", "link=https://example.com/?a=b"})
	require.NoError(t, err)
	assert.Equal(t, core.MailerTemplateData{"name": "Ann", "link": "https://example.com/?a=b"}, params)

	_, err = parseParams([]string{"name"})
	assert.Error(t, err)

	_, err = parseParams([]string{"=Ann"})
	assert.Error(t, err)
}

func TestLoadTemplateFile(t *testing.T) {
	_, tplFile := setupCLI(t)

	templates, err := loadTemplateFile(tplFile)
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "team@example.com", templates[1].From)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("- subject: no name\n"), 0644))

	_, err = loadTemplateFile(bad)
	assert.Error(t, err)
}
