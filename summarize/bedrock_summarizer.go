package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	anthropicVersion = "bedrock-2023-05-31"
	maxOutputTokens  = 1000

	taskPrompt = "I have a medical document that I'd like summarized. " +
		"Output should have short description with the Patient's Complaint, History and Observations."
	ackPrompt = "Sure, I can help with that. Please provide the text of the medical document."
)

// BedrockAPI is the subset of the Amazon Bedrock runtime client used here.
type BedrockAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type modelRequest struct {
	AnthropicVersion string    `json:"anthropic_version"`
	MaxTokens        int       `json:"max_tokens"`
	Messages         []message `json:"messages"`
}

type contentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type modelResponse struct {
	Content []contentPart `json:"content"`
}

// BedrockSummarizer summarizes each chunk with one model invocation and
// joins the per-chunk summaries with a single space, in chunk order. Chunks
// may be dispatched concurrently; results are assembled by chunk index.
type BedrockSummarizer struct {
	client      BedrockAPI
	modelID     string
	concurrency int
	logger      *zap.Logger
}

type Option func(*BedrockSummarizer)

// WithConcurrency bounds the number of in-flight model invocations.
func WithConcurrency(n int) Option {
	return func(s *BedrockSummarizer) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func NewBedrockSummarizer(client BedrockAPI, modelID string, logger *zap.Logger, opts ...Option) *BedrockSummarizer {
	s := &BedrockSummarizer{
		client:      client,
		modelID:     modelID,
		concurrency: 1,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *BedrockSummarizer) Summarize(ctx context.Context, chunks []string) (string, error) {
	summaries := make([]string, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			summary, err := s.summarizeChunk(gctx, chunk)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", i+1, err)
			}
			summaries[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	s.logger.Info("summaries generated", zap.Int("chunks", len(chunks)))
	return strings.Join(summaries, " "), nil
}

func (s *BedrockSummarizer) summarizeChunk(ctx context.Context, chunk string) (string, error) {
	body, err := json.Marshal(modelRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        maxOutputTokens,
		Messages: []message{
			{Role: "user", Content: taskPrompt},
			{Role: "assistant", Content: ackPrompt},
			{Role: "user", Content: chunk},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	out, err := s.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(s.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("invoke model: %w", serviceError(err))
	}

	var resp modelResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(resp.Content) == 0 {
		return "", errors.New("model returned no content")
	}
	// Only the first content part carries the summary text.
	return resp.Content[0].Text, nil
}

func serviceError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	return err
}
