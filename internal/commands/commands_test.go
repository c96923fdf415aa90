package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/trek/internal/core/catalog"
	"github.com/colonyops/trek/internal/core/config"
	"github.com/colonyops/trek/internal/core/trip"
	"github.com/colonyops/trek/internal/printer"
	"github.com/colonyops/trek/internal/trek"
)

type harness struct {
	t     *testing.T
	app   *trek.App
	flags *Flags
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = filepath.Join(t.TempDir(), "data")

	app, err := trek.Open(context.Background(), &cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	return &harness{t: t, app: app, flags: &Flags{Config: &cfg}}
}

// run executes args against a freshly registered command tree and returns
// everything written to stdout.
func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()

	var out, errOut bytes.Buffer
	root := &cli.Command{
		Name:      "trek",
		Writer:    &out,
		ErrWriter: &errOut,
		Before: func(ctx context.Context, _ *cli.Command) (context.Context, error) {
			return printer.NewContext(ctx, printer.New(&out)), nil
		},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	root = NewAddCmd(h.flags, h.app).Register(root)
	root = NewLsCmd(h.flags, h.app).Register(root)
	root = NewToggleCmd(h.flags, h.app).Register(root)
	root = NewEditCmd(h.flags, h.app).Register(root)
	root = NewRmCmd(h.flags, h.app).Register(root)
	root = NewFilterCmd(h.flags, h.app).Register(root)
	root = NewClearCmd(h.flags, h.app).Register(root)
	root = NewExportCmd(h.flags, h.app).Register(root)
	root = NewImportCmd(h.flags, h.app).Register(root)
	root = NewCategoriesCmd(h.flags).Register(root)
	root = NewConfigValidateCmd(h.flags).Register(root)

	err := root.Run(context.Background(), append([]string{"trek"}, args...))
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, "trek %s", strings.Join(args, " "))
	return out
}

func (h *harness) add(text, destination string, extra ...string) trip.Task {
	h.t.Helper()
	h.mustRun(append([]string{"add", "--text", text, "--destination", destination}, extra...)...)
	tasks := h.app.Store.Tasks()
	require.NotEmpty(h.t, tasks)
	return tasks[0]
}

func TestAdd(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("add", "--text", "Pack boots", "--destination", "Oslo",
		"--category", "clothing", "--sub-category", "outerwear", "--priority", "high", "--due", "2026-11-01")
	assert.Contains(t, out, `"Pack boots" for Oslo`)

	tasks := h.app.Store.Tasks()
	require.Len(t, tasks, 1)
	task := tasks[0]
	assert.Equal(t, catalog.CategoryClothing, task.Category())
	assert.Equal(t, catalog.SubCategory("outerwear"), task.SubCategory())
	assert.Equal(t, trip.PriorityHigh, task.Priority)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, "2026-11-01", task.DueDate.Format(trip.ISODate))
	assert.False(t, task.Completed)
}

func TestAdd_UsesConfiguredDefaults(t *testing.T) {
	h := newHarness(t)
	h.flags.Config.Defaults.Category = "transport"
	h.flags.Config.Defaults.Priority = "low"

	task := h.add("Book ferry", "Bergen")
	assert.Equal(t, catalog.CategoryTransport, task.Category())
	assert.Equal(t, catalog.Default(catalog.CategoryTransport), task.SubCategory())
	assert.Equal(t, trip.PriorityLow, task.Priority)
}

func TestAdd_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing destination", args: []string{"--text", "Pack boots"}},
		{name: "blank text", args: []string{"--text", "   ", "--destination", "Oslo"}},
		{name: "unknown category", args: []string{"--text", "x", "--destination", "Oslo", "--category", "snacks"}},
		{name: "foreign sub-category", args: []string{"--text", "x", "--destination", "Oslo", "--category", "clothing", "--sub-category", "ferry"}},
		{name: "bad priority", args: []string{"--text", "x", "--destination", "Oslo", "--priority", "urgent"}},
		{name: "bad due date", args: []string{"--text", "x", "--destination", "Oslo", "--due", "next week"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			_, err := h.run(append([]string{"add"}, tt.args...)...)
			require.ErrorIs(t, err, trip.ErrInvalidInput)
			assert.Empty(t, h.app.Store.Tasks())
		})
	}
}

func TestAdd_FormAndFlagsShareDateFormat(t *testing.T) {
	h := newHarness(t)
	h.flags.Config.DateFormat = "02/01/2006"

	task := h.add("Renew passport", "Lisbon", "--due", "24/12/2026")
	require.NotNil(t, task.DueDate)
	assert.Equal(t, "2026-12-24", task.DueDate.Format(trip.ISODate))

	validate := dueValidator(h.flags.Config.DateFormat)
	require.NoError(t, validate("24/12/2026"), "the form accepts what the flags accept")
	require.NoError(t, validate("2026-12-24"))
	require.NoError(t, validate(""))

	err := validate("next week")
	require.ErrorIs(t, err, trip.ErrInvalidInput)
	assert.Contains(t, err.Error(), "DD/MM/YYYY")
}

func TestSubCategoryChoice(t *testing.T) {
	tests := []struct {
		name     string
		category catalog.Category
		keep     catalog.SubCategory
		want     catalog.SubCategory
	}{
		{name: "keeps offered value", category: catalog.CategoryClothing, keep: "outerwear", want: "outerwear"},
		{name: "first option when empty", category: catalog.CategoryEssentials, keep: "", want: "footwear"},
		{name: "first option when foreign", category: catalog.CategoryPlaces, keep: "hotel", want: "landmarks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, subCategoryChoice(tt.category, tt.keep))
		})
	}
}

func TestLs(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("ls")
	assert.Contains(t, out, "No travel tasks to display")
	assert.Contains(t, out, "0 items remaining")

	h.add("Pack boots", "Oslo")
	h.add("Book ferry", "Bergen")

	out = h.mustRun("ls")
	assert.Contains(t, out, "Pack boots")
	assert.Contains(t, out, "Book ferry")
	assert.Contains(t, out, "2 items remaining")
	assert.Less(t, strings.Index(out, "Book ferry"), strings.Index(out, "Pack boots"), "newest first")
}

func TestLs_DestinationGlob(t *testing.T) {
	h := newHarness(t)
	h.add("Pack boots", "Oslo")
	h.add("Book ferry", "Bergen")

	out := h.mustRun("ls", "--destination", "OS*")
	assert.Contains(t, out, "Pack boots")
	assert.NotContains(t, out, "Book ferry")

	_, err := h.run("ls", "--destination", "[")
	require.ErrorIs(t, err, trip.ErrInvalidInput)
}

func TestLs_JSON(t *testing.T) {
	h := newHarness(t)
	h.add("Pack boots", "Oslo")
	h.add("Book ferry", "Bergen")

	out := h.mustRun("ls", "--json")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "Book ferry", first["text"])
	assert.Equal(t, "Bergen", first["destination"])
}

func TestToggle(t *testing.T) {
	h := newHarness(t)
	task := h.add("Pack boots", "Oslo")

	out := h.mustRun("toggle", shortID(task.ID))
	assert.Contains(t, out, `completed "Pack boots"`)

	got, ok := h.app.Store.Get(task.ID)
	require.True(t, ok)
	assert.True(t, got.Completed)
	assert.Contains(t, h.mustRun("ls"), "0 items remaining")

	out = h.mustRun("done", task.ID)
	assert.Contains(t, out, `reopened "Pack boots"`)
	assert.Contains(t, h.mustRun("ls"), "1 item remaining")
}

func TestToggle_UnknownID(t *testing.T) {
	h := newHarness(t)
	h.add("Pack boots", "Oslo")

	_, err := h.run("toggle", "zzzz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no task matches "zzzz"`)

	_, err = h.run("toggle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage:")
}

func TestEdit(t *testing.T) {
	h := newHarness(t)
	task := h.add("Pack boots", "Oslo", "--category", "clothing", "--sub-category", "outerwear", "--due", "2026-11-01")

	h.mustRun("edit", shortID(task.ID), "--priority", "low", "--category", "transport")

	got, ok := h.app.Store.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, trip.PriorityLow, got.Priority)
	assert.Equal(t, catalog.CategoryTransport, got.Category())
	assert.Equal(t, catalog.Default(catalog.CategoryTransport), got.SubCategory())
	assert.Equal(t, "Pack boots", got.Text)
	require.NotNil(t, got.DueDate)

	h.mustRun("edit", shortID(task.ID), "--clear-due")
	got, _ = h.app.Store.Get(task.ID)
	assert.Nil(t, got.DueDate)
}

func TestEdit_Errors(t *testing.T) {
	h := newHarness(t)
	task := h.add("Pack boots", "Oslo")

	_, err := h.run("edit", task.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to change")

	_, err = h.run("edit", task.ID, "--text", "")
	require.ErrorIs(t, err, trip.ErrInvalidInput)

	got, _ := h.app.Store.Get(task.ID)
	assert.Equal(t, "Pack boots", got.Text)
}

func TestRm(t *testing.T) {
	h := newHarness(t)
	task := h.add("Pack boots", "Oslo")
	h.add("Book ferry", "Bergen")

	out := h.mustRun("rm", shortID(task.ID))
	assert.Contains(t, out, `removed "Pack boots"`)

	tasks := h.app.Store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Book ferry", tasks[0].Text)
}

func TestFilter(t *testing.T) {
	h := newHarness(t)
	task := h.add("Pack boots", "Oslo")
	h.add("Book ferry", "Bergen")
	h.mustRun("toggle", task.ID)

	assert.Equal(t, "all\n", h.mustRun("filter"))

	out := h.mustRun("filter", "completed")
	assert.Contains(t, out, "filter set to completed (1 shown)")
	assert.Equal(t, trip.FilterCompleted, h.app.Store.Filter())

	out = h.mustRun("ls")
	assert.Contains(t, out, "Pack boots")
	assert.NotContains(t, out, "Book ferry")

	out = h.mustRun("ls", "--filter", "active")
	assert.Contains(t, out, "Book ferry")
	assert.NotContains(t, out, "Pack boots")

	_, err := h.run("filter", "done")
	require.ErrorIs(t, err, trip.ErrInvalidInput)
	assert.Equal(t, trip.FilterCompleted, h.app.Store.Filter())
}

func TestClear(t *testing.T) {
	h := newHarness(t)

	assert.Contains(t, h.mustRun("clear"), "no completed tasks to clear")

	a := h.add("Pack boots", "Oslo")
	b := h.add("Book ferry", "Bergen")
	h.add("Buy adapter", "Oslo")
	h.mustRun("toggle", a.ID)
	h.mustRun("toggle", b.ID)

	assert.Contains(t, h.mustRun("clear"), "cleared 2 completed tasks")

	tasks := h.app.Store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy adapter", tasks[0].Text)
}

func TestImport(t *testing.T) {
	h := newHarness(t)

	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"text": "Pack boots", "destination": "Oslo", "category": "clothing", "subCategory": "outerwear", "priority": "high", "dueDate": "2026-11-01"},
		{"text": "Book ferry", "destination": "Bergen", "category": "transport", "priority": "low"}
	]`), 0o644))

	out := h.mustRun("import", "-f", path)
	assert.Contains(t, out, "imported 2 tasks")

	tasks := h.app.Store.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "Book ferry", tasks[0].Text)
	assert.Equal(t, catalog.Default(catalog.CategoryTransport), tasks[0].SubCategory())
	assert.Equal(t, "Pack boots", tasks[1].Text)
}

func TestImport_RejectsWholeBatch(t *testing.T) {
	h := newHarness(t)

	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"text": "Pack boots", "destination": "Oslo"},
		{"text": "", "destination": "Bergen"}
	]`), 0o644))

	_, err := h.run("import", "-f", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 1")
	assert.Empty(t, h.app.Store.Tasks())
}

func TestExport(t *testing.T) {
	h := newHarness(t)
	h.add("Pack boots", "Oslo", "--category", "clothing", "--sub-category", "outerwear")

	out := h.mustRun("export")
	assert.Contains(t, out, "Oslo")
	assert.Contains(t, out, "Pack boots")

	out = h.mustRun("export", "--format", "json")
	var tasks []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "outerwear", tasks[0]["subCategory"])

	_, err := h.run("export", "--format", "pdf")
	require.Error(t, err)
}

func TestCategories(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("categories")
	for _, c := range catalog.Categories() {
		assert.Contains(t, out, string(c))
	}

	var infos []categoryInfo
	require.NoError(t, json.Unmarshal([]byte(h.mustRun("categories", "--json")), &infos))
	require.Len(t, infos, len(catalog.Categories()))
	for _, info := range infos {
		require.NotEmpty(t, info.Options, info.Category)
		assert.Equal(t, string(info.Options[0].Value), info.Default)
	}
}

func TestConfigValidate(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("config", "validate")
	assert.Contains(t, out, "Configuration is valid")

	h.flags.Config.TUI.Theme = "neon"
	out, err := h.run("config", "validate", "--format", "json")
	require.Error(t, err)

	var result validationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.Valid)
	assert.Contains(t, result.Fields, "tui.theme")
}

func TestTaskIDCompleter(t *testing.T) {
	h := newHarness(t)
	done := h.add("Pack boots", "Oslo")
	open := h.add("Book: ferry", "Bergen")
	h.mustRun("toggle", done.ID)

	var out bytes.Buffer
	root := &cli.Command{Name: "trek", Writer: &out}
	TaskIDCompleter(h.app)(context.Background(), root)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, shortID(open.ID)+":Book  ferry", lines[0])
	assert.Equal(t, shortID(done.ID)+":Pack boots", lines[1])
}
