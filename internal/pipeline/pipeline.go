// Package pipeline stages a source file through Parse, Bind, and Check,
// grounded on the teacher's internal/pipeline/pipeline.go: a minimal
// Pipeline{processors} that folds each Processor.Process(ctx) over a
// context, continuing even after a stage adds errors so later stages can
// still contribute diagnostics of their own.
package pipeline

import (
	"github.com/mohsen1/tsz-sub030/internal/ast"
	"github.com/mohsen1/tsz-sub030/internal/binder"
	"github.com/mohsen1/tsz-sub030/internal/checker"
	"github.com/mohsen1/tsz-sub030/internal/diagnostics"
	"github.com/mohsen1/tsz-sub030/internal/parser"
	"github.com/mohsen1/tsz-sub030/internal/typesystem"
)

// Context carries one file's state between stages, the role the teacher's
// (unretrieved) PipelineContext plays for its lexer/parser/analyzer
// pipeline — authored fresh here since this project's stages are Parse,
// Bind, and Check rather than Lex, Parse, and Analyze.
type Context struct {
	FilePath string
	Source   string

	Parser *parser.Parser
	Root   ast.NodeIndex
	Arena  *ast.Arena

	Interner *typesystem.Interner
	Binder   *binder.State

	Options     checker.Options
	Diagnostics []*diagnostics.DiagnosticError

	Errors []error
}

// NewContext seeds a Context for one source file, mirroring the teacher's
// pipeline.NewPipelineContext(sourceCode) constructor.
func NewContext(filePath, source string, in *typesystem.Interner, opts checker.Options) *Context {
	return &Context{FilePath: filePath, Source: source, Interner: in, Options: opts}
}

// Processor is one pipeline stage. It mutates and returns ctx rather than
// erroring out of the fold, so later stages still run — the same shape as
// the teacher's Processor interface.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline runs a fixed sequence of Processors over a Context.
type Pipeline struct {
	processors []Processor
}

// New builds a Pipeline from an ordered list of stages.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run folds every stage's Process over initialCtx, continuing through
// errors so the result carries every diagnostic any stage could produce,
// not just the first stage that failed.
func (p *Pipeline) Run(initialCtx *Context) *Context {
	ctx := initialCtx
	for _, proc := range p.processors {
		ctx = proc.Process(ctx)
	}
	return ctx
}

// ParseProcessor runs the scanner/parser stage, populating ctx.Root and
// ctx.Arena (the parser owns its own Scanner internally, the way
// parser.New already wires it — see internal/parser/parser.go).
type ParseProcessor struct{}

func (ParseProcessor) Process(ctx *Context) *Context {
	p := parser.New(ctx.FilePath, ctx.Source)
	ctx.Root = p.ParseSourceFile()
	ctx.Parser = p
	ctx.Arena = p.Arena()
	for _, err := range p.Errors() {
		ctx.Errors = append(ctx.Errors, err)
	}
	return ctx
}

// BindProcessor runs the binder stage, producing ctx.Binder. It requires
// ctx.Arena to already be populated (i.e. ParseProcessor ran first).
type BindProcessor struct{}

func (BindProcessor) Process(ctx *Context) *Context {
	if ctx.Arena == nil {
		return ctx
	}
	diags := diagnostics.NewCollector(ctx.FilePath)
	ctx.Binder = binder.Bind(ctx.Arena, ctx.Root, diags)
	for _, d := range diags.Diagnostics() {
		ctx.Errors = append(ctx.Errors, d)
	}
	return ctx
}

// CheckProcessor runs the checker stage, populating ctx.Diagnostics. It
// requires ctx.Arena and ctx.Binder (i.e. ParseProcessor and
// BindProcessor ran first) and a shared ctx.Interner.
type CheckProcessor struct {
	Cross checker.CrossFileResolution
}

func (cp CheckProcessor) Process(ctx *Context) *Context {
	if ctx.Arena == nil || ctx.Binder == nil || ctx.Interner == nil {
		return ctx
	}
	prog := &checker.Program{Files: []checker.FileUnit{{Index: 0, Arena: ctx.Arena, Binder: ctx.Binder}}}
	ctx.Diagnostics = checker.Check(ctx.Interner, prog, ctx.Options, cp.Cross)
	return ctx
}

// Standard builds the Parse → Bind → Check pipeline a single-file compile
// uses, the configuration internal/batch runs for each file.
func Standard() *Pipeline {
	return New(ParseProcessor{}, BindProcessor{}, CheckProcessor{})
}
