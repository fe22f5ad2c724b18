package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var update = flag.Bool("update", false, "update expected AST dumps")

func TestMain(m *testing.M) {
	flag.Parse()
	os.Exit(m.Run())
}

func getDumpPath(javaFile string) string {
	baseName := strings.TrimSuffix(filepath.Base(javaFile), ".java")
	return filepath.Join("testdata", "ast", baseName+".yaml")
}

func updateExpectedFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, content, 0o644)
}

func TestBuildTestdata(t *testing.T) {
	javaDir := filepath.Join("testdata", "java")
	entries, err := os.ReadDir(javaDir)
	require.NoError(t, err)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".java") {
			continue
		}
		javaFile := filepath.Join(javaDir, entry.Name())
		t.Run(strings.TrimSuffix(entry.Name(), ".java"), func(t *testing.T) {
			source, err := os.ReadFile(javaFile)
			require.NoError(t, err)

			r := buildSource(javaFile, source, &options{scriptName: "Script", strict: true})
			require.NoError(t, r.err)
			require.False(t, r.rejected, "unexpected diagnostics: %v", r.diagnostics)

			var out bytes.Buffer
			require.NoError(t, dump(&out, r.module, formatYAML))

			dumpFile := getDumpPath(javaFile)
			if *update {
				require.NoError(t, updateExpectedFile(dumpFile, out.Bytes()))
				t.Logf("Updated expected file: %s", dumpFile)
				return
			}
			expected, err := os.ReadFile(dumpFile)
			require.NoError(t, err, "missing expected dump, run with -update to create it")
			assert.Equal(t, string(expected), out.String())
		})
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
		createConfig  bool
		expected      config
	}{
		{
			name: "all_keys",
			configContent: `script_class_name = "Main"
strict = true
format = "json"
include = ["src/**/*.groovy"]
`,
			createConfig: true,
			expected: config{
				ScriptClassName: "Main",
				Strict:          true,
				Format:          formatJSON,
				Include:         []string{"src/**/*.groovy"},
			},
		},
		{
			name:          "only_script_name",
			configContent: "script_class_name = \"Build\"\n",
			createConfig:  true,
			expected:      config{ScriptClassName: "Build", Format: formatYAML},
		},
		{
			name:          "invalid_toml",
			configContent: "strict = \n",
			createConfig:  true,
			expected:      defaultConfig(),
		},
		{
			name:         "no_config_file",
			createConfig: false,
			expected:     defaultConfig(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.createConfig {
				require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(tt.configContent), 0o644))
			}
			assert.Equal(t, tt.expected, loadConfigFrom(dir))
		})
	}
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.groovy", "sub/b.groovy", "sub/deep/c.groovy", "sub/skip.txt"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}

	paths, err := expandInputs([]string{
		filepath.Join(dir, "**", "*.groovy"),
		filepath.Join(dir, "a.groovy"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.groovy"),
		filepath.Join(dir, "sub", "b.groovy"),
		filepath.Join(dir, "sub", "deep", "c.groovy"),
	}, paths)

	_, err = expandInputs([]string{filepath.Join(dir, "*.java")})
	assert.ErrorContains(t, err, "no files match")
}

func runCLI(t *testing.T, cfg config, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd(cfg)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestBuildCommand(t *testing.T) {
	input := filepath.Join("testdata", "cli", "kinds.java")

	stdout, _, err := runCLI(t, defaultConfig(), "build", "--format", "tree", input)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "Module"), stdout)
	assert.Contains(t, stdout, "ClassDecl")

	stdout, _, err = runCLI(t, defaultConfig(), "build", "--format", "json", "--jobs", "2", input)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"kind": "Module"`)

	outDir := t.TempDir()
	_, _, err = runCLI(t, defaultConfig(), "build", "-o", outDir, input)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "kinds.yaml"))

	_, _, err = runCLI(t, defaultConfig(), "build", "--format", "xml", input)
	assert.ErrorContains(t, err, "unknown format")
}

func TestBuildCommandUsesInclude(t *testing.T) {
	cfg := defaultConfig()
	cfg.Include = []string{filepath.Join("testdata", "cli", "*.java")}
	cfg.Format = formatTree
	stdout, _, err := runCLI(t, cfg, "build")
	require.NoError(t, err)
	assert.Contains(t, stdout, "==> "+filepath.Join("testdata", "cli", "kinds.java")+" <==")
	assert.Contains(t, stdout, "==> "+filepath.Join("testdata", "cli", "shapes.java")+" <==")
}

func TestBuildCommandOutputCollision(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a/Same.java", "b/Same.java"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("class Same {}\n"), 0o644))
	}

	outDir := t.TempDir()
	_, _, err := runCLI(t, defaultConfig(), "build", "-o", outDir, filepath.Join(dir, "**", "*.java"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "would both be written to "+filepath.Join(outDir, "Same.yaml"))
	assert.NoFileExists(t, filepath.Join(outDir, "Same.yaml"))
}
