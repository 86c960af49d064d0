package bytecode

import (
	"github.com/funvibe/funbf/internal/pipeline"
	"github.com/funvibe/funbf/internal/source"
)

// CompilerProcessor is the pipeline stage that compiles a lexed source
// file into a resolved instruction sequence.
type CompilerProcessor struct{}

func (CompilerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	src, ok := ctx.Source.(*source.SourceFile)
	if !ok {
		return ctx
	}
	program, err := Compile(src)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.Program = program
	return ctx
}
