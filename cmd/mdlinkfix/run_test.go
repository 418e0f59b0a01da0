package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdlinkfix/internal/config"
	"git.home.luguber.info/inful/mdlinkfix/internal/linkfix"
)

func TestPrintSummary_Fix(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, &linkfix.Result{
		Found: 12,
		Fixed: []string{"index.md", "commands/build.md"},
	}, false)

	require.Equal(t,
		"Found 12 markdown files\n"+
			"  Fixed: index.md\n"+
			"  Fixed: commands/build.md\n"+
			"Fixed 2 files\n",
		buf.String())
}

func TestPrintSummary_CheckWithErrors(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, &linkfix.Result{
		Found:  3,
		Fixed:  []string{"index.md"},
		Errors: []linkfix.DocError{{Doc: "broken.md", Err: errors.New("unreadable")}},
	}, true)

	out := buf.String()
	require.Contains(t, out, "Found 3 markdown files\n")
	require.Contains(t, out, "  Would fix: index.md\n")
	require.Contains(t, out, "  Skipped: broken.md (unreadable)\n")
	require.Contains(t, out, "Would fix 1 files\n")
}

func TestRootOr(t *testing.T) {
	cfg := config.Default()
	require.Equal(t, "docs", rootOr(cfg, ""))
	require.Equal(t, "manual", rootOr(cfg, "manual"))
}
