package ui

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "mastodiary/pkg/errors"
)

func newBufferPrinter() (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewPrinter(&out, &errOut), &out, &errOut
}

func TestIsTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, IsTerminal(&buf))

	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, IsTerminal(f))
}

func TestPrintSuccess(t *testing.T) {
	p, out, errOut := newBufferPrinter()
	assert.False(t, p.Color())

	p.PrintSuccess("Posts written to posts.html")

	assert.Equal(t, "Posts written to posts.html\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestPrintInfo(t *testing.T) {
	p, out, _ := newBufferPrinter()

	p.PrintInfo("Timezone", "Europe/Berlin")
	p.PrintHighlight("done")
	p.Print("raw: text\n")

	assert.Equal(t, "Timezone: Europe/Berlin\ndone\nraw: text\n", out.String())
}

func TestPrintWarning(t *testing.T) {
	p, out, errOut := newBufferPrinter()

	p.PrintWarning("config.json already exists")

	assert.Empty(t, out.String())
	assert.Equal(t, "config.json already exists\n", errOut.String())
}

func TestPrintError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "typed error names the step",
			err:      errs.New(errs.ErrorTypeUserNotFound, `user "ghost" does not exist`),
			expected: "Error looking up user: user \"ghost\" does not exist\n",
		},
		{
			name:     "wrapped typed error",
			err:      fmt.Errorf("run: %w", errs.New(errs.ErrorTypeOutputWrite, "disk full")),
			expected: "Error writing output: run: disk full\n",
		},
		{
			name:     "untyped error",
			err:      errors.New("boom"),
			expected: "Error running: boom\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, out, errOut := newBufferPrinter()
			p.PrintError(tt.err)

			assert.Empty(t, out.String())
			assert.Equal(t, tt.expected, errOut.String())
		})
	}
}
