package source

import "github.com/funvibe/funbf/internal/pipeline"

// LexerProcessor is the pipeline stage that lexes raw text into a source
// file. It always succeeds.
type LexerProcessor struct{}

func (LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.Source = FromString(ctx.Raw, ctx.Label)
	return ctx
}
