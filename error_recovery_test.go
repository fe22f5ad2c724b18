package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heshanpadmasiri/groovyast/cst"
	"github.com/heshanpadmasiri/groovyast/diagnostics"
)

func TestErrorRecovery(t *testing.T) {
	// the modifier and annotation problems are recoverable
	source := []byte(`
class TestModifiers {
    public public int validField1 = 5;

    @Deprecated(since = compute())
    public int getField1() {
        return validField1;
    }

    int validField2 = 10;
}
`)

	t.Run("non-strict mode continues on error", func(t *testing.T) {
		r := buildSource("test.java", source, &options{scriptName: "Script"})
		require.NoError(t, r.err)
		assert.False(t, r.failed())
		require.Len(t, r.diagnostics, 2)
		assert.Equal(t, "Cannot repeat modifier: public", r.diagnostics[0].Message)
		assert.Equal(t, 3, r.diagnostics[0].Line)
		assert.True(t, strings.HasPrefix(r.diagnostics[1].Message, "Expression compute()"))

		cls := r.module.ClassNamed("TestModifiers")
		require.NotNil(t, cls)
		assert.NotNil(t, cls.Field("validField1"))
		assert.NotNil(t, cls.Property("validField2"))
		assert.NotNil(t, cls.Method("getField1"))
	})

	t.Run("strict mode rejects the file", func(t *testing.T) {
		r := buildSource("test.java", source, &options{scriptName: "Script", strict: true})
		require.NoError(t, r.err)
		assert.True(t, r.failed())
		assert.Len(t, r.diagnostics, 2)
	})

	t.Run("fatal error stops the build", func(t *testing.T) {
		r := buildSource("fatal.java", []byte(`
class Resources {
    void read() {
        try (var in = open()) {
        }
    }
}
`), &options{scriptName: "Script"})
		require.Error(t, r.err)
		assert.True(t, diagnostics.IsFatal(r.err))
		assert.Nil(t, r.module)
		assert.Contains(t, r.err.Error(), "try-with-resources")
	})

	t.Run("syntax error", func(t *testing.T) {
		r := buildSource("broken.java", []byte("class Broken {"), &options{})
		require.Error(t, r.err)
		assert.ErrorIs(t, r.err, cst.ErrSyntax)
	})
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.java")
	require.NoError(t, os.WriteFile(bad, []byte("class A {\n  private private int x;\n}\n"), 0o644))
	good := filepath.Join(dir, "good.java")
	require.NoError(t, os.WriteFile(good, []byte("class B {}\n"), 0o644))

	_, stderr, err := runCLI(t, defaultConfig(), "check", good)
	require.NoError(t, err)
	assert.Empty(t, stderr)

	_, stderr, err = runCLI(t, defaultConfig(), "check", filepath.Join(dir, "*.java"))
	assert.ErrorIs(t, err, errDiagnostics)
	assert.Equal(t, bad+":2:11: Cannot repeat modifier: private\n", stderr)

	// without strict mode the module is still dumped
	stdout, _, err := runCLI(t, defaultConfig(), "build", bad)
	require.NoError(t, err)
	assert.Contains(t, stdout, "kind: Module")

	_, _, err = runCLI(t, defaultConfig(), "build", "--strict", bad)
	assert.ErrorIs(t, err, errDiagnostics)
}
