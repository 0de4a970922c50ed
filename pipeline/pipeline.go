package pipeline

import (
	"context"
	"errors"
	"io"
	"os"

	"go.uber.org/zap"

	"medsum/extract"
	"medsum/file"
	"medsum/pkg/chunking"
	"medsum/summarize"
)

// State of a single run. States advance monotonically; Failed absorbs every
// non-terminal state and a run is never resumed after it.
type State string

const (
	StateIdle        State = "idle"
	StateUploading   State = "uploading"
	StateExtracting  State = "extracting"
	StateChunking    State = "chunking"
	StateSummarizing State = "summarizing"
	StateDone        State = "done"
	StateFailed      State = "failed"
)

// Pipeline sequences intake, extraction, chunking and summarization for one
// document at a time. All collaborators are injected at construction and
// reused across runs.
type Pipeline struct {
	store      *file.Store
	extractor  extract.Client
	chunker    chunking.ChunkingClient
	summarizer summarize.Client
	logger     *zap.Logger
}

func NewPipeline(
	store *file.Store,
	extractor extract.Client,
	chunker chunking.ChunkingClient,
	summarizer summarize.Client,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		store:      store,
		extractor:  extractor,
		chunker:    chunker,
		summarizer: summarizer,
		logger:     logger,
	}
}

type run struct {
	state  State
	logger *zap.Logger
}

func (r *run) to(next State) {
	r.logger.Info("run state",
		zap.String("from", string(r.state)),
		zap.String("to", string(next)))
	r.state = next
}

func (r *run) fail(code Code, message string, err error) *RunError {
	r.logger.Error("run failed",
		zap.String("state", string(r.state)),
		zap.String("code", string(code)),
		zap.Error(err))
	r.state = StateFailed
	return newRunError(code, message, err)
}

// Process executes one run for a submitted document and returns the final
// summary. On failure it returns a *RunError carrying the terminal cause;
// no partial summary is ever returned.
func (p *Pipeline) Process(ctx context.Context, filename string, upload io.Reader) (string, error) {
	r := &run{state: StateIdle, logger: p.logger.With(zap.String("document", filename))}
	r.to(StateUploading)

	format, err := file.DetectFormat(filename)
	if err != nil {
		return "", r.fail(CodeUnsupportedFormat, "Unsupported file format.", err)
	}

	path, err := p.store.Save(filename, upload)
	if err != nil {
		return "", r.fail(CodeUploadError, "Failed to upload the document.", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", r.fail(CodeUploadError, "Failed to upload the document.", err)
	}

	r.to(StateExtracting)
	text, err := p.extractor.ExtractText(ctx, &file.Document{Format: format, Bytes: raw})
	if err != nil {
		return "", r.fail(CodeExtractionFailed, "Failed to extract text from the document.", err)
	}
	if text == "" {
		return "", r.fail(CodeExtractionFailed, "Failed to extract text from the document.",
			errors.New("no text extracted"))
	}

	r.to(StateChunking)
	chunks, err := p.chunker.ChunkText(text)
	if err != nil {
		return "", r.fail(CodeInvalidInput, "Failed to split the document text into chunks.", err)
	}
	if len(chunks) == 0 {
		return "", r.fail(CodeNoContent, "No content to summarize.",
			errors.New("splitter produced zero chunks"))
	}

	r.to(StateSummarizing)
	summary, err := p.summarizer.Summarize(ctx, chunks)
	if err != nil {
		return "", r.fail(CodeSummarizationFailed, "Failed to generate summary.", err)
	}

	r.to(StateDone)
	r.logger.Info("run complete", zap.Int("chunks", len(chunks)))
	return summary, nil
}
