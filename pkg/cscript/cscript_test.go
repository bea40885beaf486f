package cscript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileSource(t *testing.T) {
	eng := New()
	script, ok, err := eng.CompileSource(`
int add(int a, int b) { return a + b; }
int total = add(20, 22);
`)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, script.Diagnostics)
	assert.Len(t, script.Globals, 1)
}

func TestCompileReportsDiagnostics(t *testing.T) {
	eng := New()
	script, ok, err := eng.CompileSource(`int a{3.14};`)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NotEmpty(t, script.Diagnostics)
}

func TestEngineTracksScripts(t *testing.T) {
	eng := New()
	_, _, err := eng.CompileSource("int a = 1;")
	require.NoError(t, err)
	_, _, err = eng.CompileSource("int b = 2;")
	require.NoError(t, err)
	assert.Len(t, eng.Scripts(), 2)
}
