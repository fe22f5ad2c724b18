// Package builder turns a concrete syntax tree into an ast.Module.
//
// Builders for each syntactic family live in their own file and take the
// BuildContext as their receiver. Fatal problems are returned as errors and
// unwind the whole build; recoverable ones are reported to the diagnostics
// handler and a best effort node is produced instead.
package builder

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/heshanpadmasiri/groovyast/ast"
	"github.com/heshanpadmasiri/groovyast/cst"
	"github.com/heshanpadmasiri/groovyast/diagnostics"
)

// DefaultScriptClassName names anonymous classes created outside any class
const DefaultScriptClassName = "Script"

// Option configures a build
type Option func(*BuildContext)

// WithLogger sets the logger used for debug tracing and diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(ctx *BuildContext) {
		if logger != nil {
			ctx.logger = logger
		}
	}
}

// WithCollector sends every diagnostic to collector
func WithCollector(collector diagnostics.Collector) Option {
	return func(ctx *BuildContext) {
		ctx.collector = collector
	}
}

// WithScriptName sets the script class name
func WithScriptName(name string) Option {
	return func(ctx *BuildContext) {
		if name != "" {
			ctx.scriptName = name
		}
	}
}

// WithStrict makes Build fail when any recoverable diagnostic was reported
func WithStrict(strict bool) Option {
	return func(ctx *BuildContext) {
		ctx.strict = strict
	}
}

// innerScope collects the classes declared while a class body, a method body
// or the module top level is being built.
type innerScope struct {
	method  *ast.MethodDecl
	classes []*ast.ClassDecl
}

// BuildContext holds all mutable state of one build
type BuildContext struct {
	module     *ast.Module
	handler    *diagnostics.Handler
	collector  diagnostics.Collector
	logger     *zap.Logger
	scriptName string
	strict     bool

	classes        []*ast.ClassDecl
	scopes         []*innerScope
	anonymousCount int
}

func newBuildContext(opts ...Option) *BuildContext {
	ctx := &BuildContext{
		logger:     zap.NewNop(),
		scriptName: DefaultScriptClassName,
	}
	for _, opt := range opts {
		opt(ctx)
	}
	ctx.handler = diagnostics.NewHandler(ctx.collector, ctx.logger)
	ctx.module = &ast.Module{ScriptClassName: ctx.scriptName}
	ctx.scopes = []*innerScope{{}}
	return ctx
}

// Build converts root, a program node, into a module. A fatal problem
// returns a *diagnostics.FatalError and no module. In strict mode the
// recoverable diagnostics are returned as a combined error next to the
// module.
func Build(root *cst.Node, opts ...Option) (*ast.Module, error) {
	ctx := newBuildContext(opts...)
	if err := ctx.buildProgram(root); err != nil {
		return nil, err
	}
	if ctx.strict {
		return ctx.module, ctx.handler.Err()
	}
	return ctx.module, nil
}

func (ctx *BuildContext) currentClass() *ast.ClassDecl {
	if len(ctx.classes) == 0 {
		return nil
	}
	return ctx.classes[len(ctx.classes)-1]
}

func (ctx *BuildContext) pushClass(c *ast.ClassDecl) {
	ctx.logger.Debug("enter class", zap.String("name", c.Name))
	ctx.classes = append(ctx.classes, c)
	ctx.scopes = append(ctx.scopes, &innerScope{})
}

func (ctx *BuildContext) popClass() {
	c := ctx.currentClass()
	ctx.logger.Debug("exit class", zap.String("name", c.Name))
	ctx.classes = ctx.classes[:len(ctx.classes)-1]
	ctx.scopes = ctx.scopes[:len(ctx.scopes)-1]
}

func (ctx *BuildContext) pushMethod(m *ast.MethodDecl) {
	ctx.scopes = append(ctx.scopes, &innerScope{method: m})
}

// popMethod closes the method scope and links the classes declared in it
func (ctx *BuildContext) popMethod() {
	scope := ctx.scopes[len(ctx.scopes)-1]
	ctx.scopes = ctx.scopes[:len(ctx.scopes)-1]
	for _, c := range scope.classes {
		c.EnclosingMethod = scope.method
	}
	scope.method.InnerClasses = append(scope.method.InnerClasses, scope.classes...)
}

// registerInnerClass records c in the innermost scope and in the module
func (ctx *BuildContext) registerInnerClass(c *ast.ClassDecl) {
	scope := ctx.scopes[len(ctx.scopes)-1]
	scope.classes = append(scope.classes, c)
	if outer := ctx.currentClass(); outer != nil {
		c.Outer = outer
		outer.InnerClasses = append(outer.InnerClasses, c)
	}
	ctx.module.AddClass(c)
}

// nextAnonymousName returns the name of the next anonymous class
func (ctx *BuildContext) nextAnonymousName() string {
	ctx.anonymousCount++
	outer := ctx.scriptName
	if c := ctx.currentClass(); c != nil {
		outer = c.Name
	}
	return outer + "$" + strconv.Itoa(ctx.anonymousCount)
}

// report records a recoverable diagnostic at the start of n
func (ctx *BuildContext) report(n *cst.Node, format string, args ...any) {
	pos := n.StartToken().Start()
	ctx.handler.Report(pos.Line, pos.Column, format, args...)
}

// fatal records a fatal diagnostic at the start of n and returns the error
func (ctx *BuildContext) fatal(n *cst.Node, format string, args ...any) error {
	pos := n.StartToken().Start()
	return ctx.handler.Fatal(pos.Line, pos.Column, format, args...)
}

// unsupported reports a node kind no builder accepts in that position
func (ctx *BuildContext) unsupported(n *cst.Node, category string) error {
	return ctx.fatal(n, "unsupported %s: %s %s", category, n.Kind(), n.ToSexp())
}
