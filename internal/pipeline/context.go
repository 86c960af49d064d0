// Package pipeline chains the processing stages from raw text to an
// executable program.
package pipeline

// PipelineContext flows through the processors, accumulating stage outputs
// and diagnostics.
type PipelineContext struct {
	// Raw is the source text; Label identifies it in diagnostics only.
	Raw   string
	Label string

	// Source holds a *source.SourceFile once the lexing stage ran.
	Source any

	// Program holds a []bytecode.Instruction once the compile stage ran.
	Program any

	Errors []error
}

func NewPipelineContext(raw, label string) *PipelineContext {
	return &PipelineContext{Raw: raw, Label: label}
}

// Processor is a single pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}
