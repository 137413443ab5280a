package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunEvalPrintsValue(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"eval", "1 + 2 * 3"}, strings.NewReader(""), &out, &errOut)

	require.Equal(t, exitOK, code)
	require.Equal(t, "7\n", out.String())
	require.Empty(t, errOut.String())
}

func TestRunEvalRuntimeErrorExitsUserError(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"eval", "1 / 0"}, strings.NewReader(""), &out, &errOut)

	require.Equal(t, exitUserError, code)
	require.NotEmpty(t, errOut.String())
}

func TestRunEvalParseErrorExitsParse(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"eval", "let ="}, strings.NewReader(""), &out, &errOut)

	require.Equal(t, exitParse, code)
}

func TestRunCheckReportsInferredType(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"check"}, strings.NewReader("1 + 1"), &out, &errOut)

	require.Equal(t, exitOK, code)
	require.Contains(t, out.String(), "int")
}

func TestRunUnknownSubcommandExitsUsage(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"bogus"}, strings.NewReader(""), &out, &errOut)

	require.Equal(t, exitUsage, code)
}

func TestRunFmtEchoesValidSource(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"fmt"}, strings.NewReader("1 + 1"), &out, &errOut)

	require.Equal(t, exitOK, code)
	require.Equal(t, "1 + 1", out.String())
}
