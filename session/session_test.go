package session_test

import (
	"path/filepath"
	"testing"

	"github.com/paiml/ruchy-sub009/session"
	"github.com/paiml/ruchy-sub009/value"
	"github.com/stretchr/testify/require"
)

func TestEvalBindingPersistsAcrossInputs(t *testing.T) {
	s := session.New(session.DefaultConfig())

	res := s.Eval("let x = 10")
	require.True(t, res.Ok())

	res = s.Eval("x + 5")
	require.True(t, res.Ok())
	require.Equal(t, value.Integer(15), res.Value)
}

func TestEvalTypeErrorRollsBackScope(t *testing.T) {
	s := session.New(session.DefaultConfig())

	res := s.Eval("let x = 10")
	require.True(t, res.Ok())

	res = s.Eval(`let y = x + "oops"`)
	require.False(t, res.Ok())
	require.True(t, res.Diags.HasErrors())

	_, hasY := s.Scope().Lookup("y")
	require.False(t, hasY)

	res = s.Eval("x")
	require.True(t, res.Ok())
	require.Equal(t, value.Integer(10), res.Value)
}

func TestEvalRuntimeErrorRollsBackScope(t *testing.T) {
	s := session.New(session.DefaultConfig())

	res := s.Eval("let mut total = 0")
	require.True(t, res.Ok())

	res = s.Eval("total = total + (1 / 0)")
	require.False(t, res.Ok())

	res = s.Eval("total")
	require.True(t, res.Ok())
	require.Equal(t, value.Integer(0), res.Value)
}

func TestResetClearsBindings(t *testing.T) {
	s := session.New(session.DefaultConfig())

	require.True(t, s.Eval("let x = 1").Ok())
	require.Contains(t, s.Bindings(), "x")

	s.Reset()
	require.NotContains(t, s.Bindings(), "x")
}

func TestSaveAndLoadRoundTripsBindings(t *testing.T) {
	s := session.New(session.DefaultConfig())
	require.True(t, s.Eval("let x = 42").Ok())
	require.True(t, s.Eval(`let name = "ruchy"`).Ok())

	path := filepath.Join(t.TempDir(), "snap.json")
	require.NoError(t, s.Save(path))

	fresh := session.New(session.DefaultConfig())
	require.NoError(t, fresh.Load(path))

	v, ok := fresh.Scope().Lookup("x")
	require.True(t, ok)
	require.Equal(t, value.Integer(42), v)

	v, ok = fresh.Scope().Lookup("name")
	require.True(t, ok)
	require.Equal(t, value.Str("ruchy"), v)
}

func TestHistoryRoundTripsThroughFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")

	require.NoError(t, session.AppendHistory(path, "let x = 1"))
	require.NoError(t, session.AppendHistory(path, `"line\nwith\nnewlines"`))

	lines, err := session.LoadHistory(path)
	require.NoError(t, err)
	require.Equal(t, []string{"let x = 1", `"line\nwith\nnewlines"`}, lines)
}

func TestTypeOfDoesNotEvaluate(t *testing.T) {
	s := session.New(session.DefaultConfig())

	ty, diags := s.TypeOf("1 / 0")
	require.False(t, diags.HasErrors())
	require.Equal(t, "int", ty.String())

	require.Empty(t, s.Bindings())
}
