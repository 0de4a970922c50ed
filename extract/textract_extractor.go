package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"medsum/file"
)

// TextractAPI is the subset of the Amazon Textract client used here.
type TextractAPI interface {
	DetectDocumentText(ctx context.Context, params *textract.DetectDocumentTextInput, optFns ...func(*textract.Options)) (*textract.DetectDocumentTextOutput, error)
	AnalyzeDocument(ctx context.Context, params *textract.AnalyzeDocumentInput, optFns ...func(*textract.Options)) (*textract.AnalyzeDocumentOutput, error)
}

// TextractExtractor extracts document text through Amazon Textract. Images
// go through plain text line detection; PDFs go through document analysis
// with table and form features, which improves line recognition on complex
// layouts. Both modes reconstruct the text from LINE blocks in returned
// order, one line per newline.
type TextractExtractor struct {
	client TextractAPI
	logger *zap.Logger
}

func NewTextractExtractor(client TextractAPI, logger *zap.Logger) *TextractExtractor {
	return &TextractExtractor{
		client: client,
		logger: logger,
	}
}

func (e *TextractExtractor) ExtractText(ctx context.Context, doc *file.Document) (string, error) {
	var blocks []types.Block
	switch doc.Format {
	case file.FormatPDF:
		out, err := e.client.AnalyzeDocument(ctx, &textract.AnalyzeDocumentInput{
			Document:     &types.Document{Bytes: doc.Bytes},
			FeatureTypes: []types.FeatureType{types.FeatureTypeTables, types.FeatureTypeForms},
		})
		if err != nil {
			return "", fmt.Errorf("analyze document: %w", serviceError(err))
		}
		blocks = out.Blocks
	default:
		out, err := e.client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
			Document: &types.Document{Bytes: doc.Bytes},
		})
		if err != nil {
			return "", fmt.Errorf("detect document text: %w", serviceError(err))
		}
		blocks = out.Blocks
	}

	var sb strings.Builder
	lines := 0
	for _, block := range blocks {
		if block.BlockType != types.BlockTypeLine || block.Text == nil {
			continue
		}
		sb.WriteString(*block.Text)
		sb.WriteByte('\n')
		lines++
	}

	e.logger.Info("text extracted",
		zap.String("format", string(doc.Format)),
		zap.Int("blocks", len(blocks)),
		zap.Int("lines", lines))

	return sb.String(), nil
}

// serviceError surfaces the human-readable message of a Textract error
// instead of the full wire diagnostics.
func serviceError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	return err
}
