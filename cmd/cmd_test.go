package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/eventplan/core/model"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// lastField returns the id printed by "kind id" lines.
func lastField(t *testing.T, out string) string {
	t.Helper()
	fields := strings.Fields(out)
	require.NotEmpty(t, fields)
	return fields[len(fields)-1]
}

func TestCLIPlanningFlow(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "gala.eventplan.json")
	f := "--file=" + doc

	out, err := run(t, "init", f, "--name", "Gala", "--start", "2024-06-01T00:00:00Z", "--end", "2024-06-02T00:00:00Z")
	require.NoError(t, err, out)
	assert.Contains(t, out, "created project")

	_, err = run(t, "init", f, "--name", "Again", "--start", "2024-06-01T00:00:00Z", "--end", "2024-06-02T00:00:00Z")
	assert.Error(t, err, "init must not overwrite without --force")

	out, err = run(t, "staff", "add", "Ana", f)
	require.NoError(t, err, out)
	ana := lastField(t, out)

	out, err = run(t, "location", "add", "Hall", "--lat", "48.85", "--lng", "2.35", f)
	require.NoError(t, err, out)
	hall := lastField(t, out)
	out, err = run(t, "location", "add", "Stage", "--lat", "48.86", "--lng", "2.36", f)
	require.NoError(t, err, out)
	stage := lastField(t, out)

	_, err = run(t, "location", "add", "Hall", f)
	assert.ErrorIs(t, err, model.ErrDuplicateName)

	out, err = run(t, "material", "add", "Chair", "--unit", "unit", f)
	require.NoError(t, err, out)
	chair := lastField(t, out)

	out, err = run(t, "sessions", "add", f, "--owner", ana, "--start", "2024-06-01T09:00:00Z",
		"--durations", "30,60", "--location", hall, "--material", chair+"=3")
	require.NoError(t, err, out)
	assert.Equal(t, 2, strings.Count(out, "session "))

	_, err = run(t, "sessions", "add", f, "--owner", ana, "--start", "2024-06-01T10:00:00Z", "--durations", "15")
	assert.ErrorIs(t, err, model.ErrOverlap)

	out, err = run(t, "sessions", "add", f, "--owner", ana, "--start", "2024-06-01T11:30:00Z",
		"--durations", "30", "--location", stage)
	require.NoError(t, err, out)
	last := strings.Fields(out)[1]

	out, err = run(t, "bounds", f)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01T09:00:00.000Z 2024-06-01T12:00:00.000Z\n", out)

	out, err = run(t, "position", f, "--owner", ana, "--at", "2024-06-01T09:15:00Z")
	require.NoError(t, err)
	assert.Equal(t, "x=0.0000 y=1.0000\n", out)

	out, err = run(t, "position", f, "--owner", ana, "--at", "2024-06-01T11:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "x=0.5000 y=0.5000\n", out)

	out, err = run(t, "materials", f, "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, "Material,Unit,Total,Person,Role,Quantity\nChair,unit,6,Ana,STAFF,6\n", out)

	out, err = run(t, "summary", f, "--owner", ana)
	require.NoError(t, err)
	assert.Contains(t, out, "120")

	out, err = run(t, "playback", f, "--step", "60")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "at,owner_id,x,y\n"), out)
	assert.Contains(t, out, "2024-06-01T12:00:00.000Z,"+ana)

	out, err = run(t, "sessions", "resize", last, "45", f)
	require.NoError(t, err, out)
	assert.Contains(t, out, "2024-06-01T12:15:00.000Z")

	out, err = run(t, "sessions", "rm", last, f)
	require.NoError(t, err)
	assert.Contains(t, out, "removed")

	out, err = run(t, "sessions", "list", f)
	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(strings.TrimSpace(out), "\n")))

	out, err = run(t, "validate", f)
	require.NoError(t, err)
	assert.Equal(t, "valid: Gala (2 sessions)\n", out)

	data, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"schemaVersion": 1`)
}

func TestCLITemplate(t *testing.T) {
	dir := t.TempDir()
	f := "--file=" + filepath.Join(dir, "plan.eventplan.json")
	tmpl := filepath.Join(dir, "setup.yaml")
	require.NoError(t, os.WriteFile(tmpl, []byte("durations: [15, 15]\nnote: setup\n"), 0o644))

	_, err := run(t, "init", f, "--name", "Expo", "--start", "2024-06-01T00:00:00Z", "--end", "2024-06-01T00:00:00Z")
	require.NoError(t, err)
	out, err := run(t, "staff", "add", "Bo", f)
	require.NoError(t, err)
	bo := lastField(t, out)

	out, err = run(t, "sessions", "add", f, "--owner", bo, "--start", "2024-06-01T08:00:00Z", "--template", tmpl)
	require.NoError(t, err, out)
	assert.Contains(t, out, "2024-06-01T08:30:00.000Z")
}

func TestCLITemplateFlagsOverride(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "plan.eventplan.json")
	f := "--file=" + doc
	tmpl := filepath.Join(dir, "setup.yaml")
	require.NoError(t, os.WriteFile(tmpl, []byte("durations: [15, 15]\nnote: setup\n"), 0o644))

	_, err := run(t, "init", f, "--name", "Expo", "--start", "2024-06-01T00:00:00Z", "--end", "2024-06-01T00:00:00Z")
	require.NoError(t, err)
	out, err := run(t, "staff", "add", "Bo", f)
	require.NoError(t, err)
	bo := lastField(t, out)

	out, err = run(t, "sessions", "add", f, "--owner", bo, "--start", "2024-06-01T08:00:00Z",
		"--template", tmpl, "--durations", "45", "--note", "doors")
	require.NoError(t, err, out)
	assert.Contains(t, out, "2024-06-01T08:45:00.000Z")
	assert.Equal(t, 1, strings.Count(out, "session "))

	data, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"note": "doors"`)
	assert.NotContains(t, string(data), `"note": "setup"`)
}

func TestCLIErrors(t *testing.T) {
	dir := t.TempDir()
	f := "--file=" + filepath.Join(dir, "missing.eventplan.json")

	_, err := run(t, "info", f)
	assert.ErrorIs(t, err, errNoDocument)

	bad := filepath.Join(dir, "bad.eventplan.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"name":"x","schemaVersion":2}`), 0o644))
	out, err := run(t, "validate", "--file="+bad)
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Contains(t, out, "schemaVersion")

	_, err = run(t, "init", f, "--name", "X", "--start", "yesterday", "--end", "2024-06-01T00:00:00Z")
	assert.Error(t, err)
}

func TestReportable(t *testing.T) {
	assert.False(t, reportable(nil))
	assert.False(t, reportable(&model.OverlapError{SessionID: "a", ConflictingID: "b"}))
	assert.False(t, reportable(&model.ValidationError{}))
	assert.False(t, reportable(fmt.Errorf("no project in slot: %w", errNoDocument)))
	assert.True(t, reportable(errors.New("disk full")))
}

func TestCLIMaterialsHTML(t *testing.T) {
	f := "--file=" + filepath.Join(t.TempDir(), "plan.eventplan.json")
	_, err := run(t, "init", f, "--name", "Expo", "--start", "2024-06-01T00:00:00Z", "--end", "2024-06-01T00:00:00Z")
	require.NoError(t, err)
	out, err := run(t, "materials", f, "--format", "html", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Expo materials")

	_, err = run(t, "materials", f, "--format", "xml")
	assert.Error(t, err)
}
