package printer

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestPrinter_Lines(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Successf("added %q", "Buy adapter")
	p.Infof("%d items remaining", 2)
	p.Warnf("nothing to clear")
	p.Errorf("task %s not found", "ab12")
	p.Printf("plain")

	assert.Equal(t, "✓ added \"Buy adapter\"\n• 2 items remaining\n! nothing to clear\n✗ task ab12 not found\nplain\n", ansi.Strip(buf.String()))
}

func TestPrinter_Header(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Header("Categories")

	assert.Equal(t, "Categories\n────────────\n", ansi.Strip(buf.String()))
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	ctx := NewContext(context.Background(), p)
	assert.Same(t, p, Ctx(ctx))
	assert.NotNil(t, Ctx(context.Background()))
}
