package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/heshanpadmasiri/groovyast/ast"
	"github.com/heshanpadmasiri/groovyast/builder"
	"github.com/heshanpadmasiri/groovyast/cst"
	"github.com/heshanpadmasiri/groovyast/diagnostics"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
	formatTree = "tree"
)

var errDiagnostics = errors.New("build reported diagnostics")

type options struct {
	format     string
	scriptName string
	strict     bool
	jobs       int
	verbose    bool
	outDir     string
	include    []string
	logger     *zap.Logger
}

// fileResult is the outcome of building one input file
type fileResult struct {
	path        string
	module      *ast.Module
	diagnostics []diagnostics.Diagnostic
	err         error
	// rejected is set in strict mode when recoverable diagnostics were reported
	rejected bool
}

func (r *fileResult) failed() bool {
	return r.err != nil || r.rejected
}

func main() {
	rootCmd := newRootCmd(loadConfig())
	diagnostics.Fatal("groovyast", rootCmd.Execute())
}

func newRootCmd(cfg config) *cobra.Command {
	opts := &options{include: cfg.Include}
	rootCmd := &cobra.Command{
		Use:           "groovyast",
		Short:         "Build abstract syntax trees for Groovy-style scripts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case formatYAML, formatJSON, formatTree:
			default:
				return fmt.Errorf("unknown format %q", opts.format)
			}
			if opts.jobs < 1 {
				opts.jobs = 1
			}
			logger, err := newLogger(opts.verbose)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.format, "format", cfg.Format, "output format: yaml, json or tree")
	flags.StringVar(&opts.scriptName, "script-name", cfg.ScriptClassName, "name of the script class")
	flags.BoolVar(&opts.strict, "strict", cfg.Strict, "fail on recoverable diagnostics")
	flags.IntVarP(&opts.jobs, "jobs", "j", runtime.NumCPU(), "number of files built concurrently")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newBuildCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts))
	return rootCmd
}

func newBuildCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [files|globs...]",
		Short: "Build and dump the AST of each input",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer opts.logger.Sync() //nolint:errcheck
			results, err := buildInputs(cmd.Context(), args, opts)
			if err != nil {
				return err
			}
			printDiagnostics(cmd.ErrOrStderr(), results)
			if err := checkOutputCollisions(results, opts); err != nil {
				return err
			}
			failed := false
			for i := range results {
				r := &results[i]
				if r.failed() {
					failed = true
					continue
				}
				if err := emit(cmd.OutOrStdout(), r, opts, len(results) > 1); err != nil {
					return err
				}
			}
			if failed {
				return errDiagnostics
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "write one dump per input into this directory")
	return cmd
}

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check [files|globs...]",
		Short: "Build each input and report diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer opts.logger.Sync() //nolint:errcheck
			results, err := buildInputs(cmd.Context(), args, opts)
			if err != nil {
				return err
			}
			printDiagnostics(cmd.ErrOrStderr(), results)
			for i := range results {
				if results[i].err != nil || len(results[i].diagnostics) > 0 {
					return errDiagnostics
				}
			}
			return nil
		},
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// expandInputs resolves file names and ** globs into a sorted list of
// distinct paths
func expandInputs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expand %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %s", pattern)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// buildInputs builds every input concurrently. Results keep the order of the
// expanded paths.
func buildInputs(ctx context.Context, args []string, opts *options) ([]fileResult, error) {
	patterns := args
	if len(patterns) == 0 {
		patterns = opts.include
	}
	if len(patterns) == 0 {
		return nil, errors.New("no input files")
	}
	paths, err := expandInputs(patterns)
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	results := make([]fileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			source, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			results[i] = buildSource(path, source, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// buildSource parses and builds one file. Syntax and fatal errors end up in
// the result rather than failing the whole run.
func buildSource(path string, source []byte, opts *options) fileResult {
	r := fileResult{path: path}
	logger := opts.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("file", path))

	root, err := cst.ParseJava(source)
	if err != nil {
		r.err = err
		return r
	}
	var list diagnostics.List
	r.module, r.err = builder.Build(root,
		builder.WithLogger(logger),
		builder.WithCollector(&list),
		builder.WithScriptName(opts.scriptName),
		builder.WithStrict(opts.strict),
	)
	for _, d := range list.Items() {
		if d.Severity != diagnostics.SeverityFatal {
			r.diagnostics = append(r.diagnostics, d)
		}
	}
	if r.err != nil && !diagnostics.IsFatal(r.err) {
		// the combined error repeats the diagnostics collected above
		r.err = nil
		r.rejected = true
	}
	logger.Debug("file built", zap.Int("diagnostics", len(r.diagnostics)), zap.Error(r.err))
	return r
}

func printDiagnostics(w io.Writer, results []fileResult) {
	for i := range results {
		r := &results[i]
		for _, d := range r.diagnostics {
			fmt.Fprintf(w, "%s:%s\n", r.path, d.Error())
		}
		if r.err != nil {
			var fe *diagnostics.FatalError
			if errors.As(r.err, &fe) {
				fmt.Fprintf(w, "%s:%s\n", r.path, fe.Diagnostic.Error())
				continue
			}
			fmt.Fprintf(w, "%s: %v\n", r.path, r.err)
		}
	}
}

// emit writes the module of r to its own file under the output directory or
// to w. Several modules on w are separated by a header line.
func emit(w io.Writer, r *fileResult, opts *options, header bool) error {
	if opts.outDir != "" {
		if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
			return err
		}
		f, err := os.Create(outputPath(r.path, opts))
		if err != nil {
			return err
		}
		if err := dump(f, r.module, opts.format); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	if header {
		fmt.Fprintf(w, "==> %s <==\n", r.path)
	}
	return dump(w, r.module, opts.format)
}

// outputPath is the dump file of input under the output directory
func outputPath(input string, opts *options) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(opts.outDir, base+"."+extension(opts.format))
}

// checkOutputCollisions rejects inputs that would be dumped to the same file
func checkOutputCollisions(results []fileResult, opts *options) error {
	if opts.outDir == "" {
		return nil
	}
	written := make(map[string]string)
	for i := range results {
		out := outputPath(results[i].path, opts)
		if prev, ok := written[out]; ok {
			return fmt.Errorf("%s and %s would both be written to %s", prev, results[i].path, out)
		}
		written[out] = results[i].path
	}
	return nil
}

func dump(w io.Writer, mod *ast.Module, format string) error {
	switch format {
	case formatJSON:
		return ast.DumpJSON(w, mod)
	case formatTree:
		return ast.DumpTree(w, mod)
	default:
		return ast.DumpYAML(w, mod)
	}
}

func extension(format string) string {
	if format == formatTree {
		return "txt"
	}
	return format
}
