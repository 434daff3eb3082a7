package services

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// ExtractionFailedMessage is shown to the user in place of resume text when
// the upload could not be parsed.
const ExtractionFailedMessage = "Could not extract text from the PDF file."

type PDFParserService interface {
	Extract(data []byte) ExtractionResult
	ExtractTextWithMetaData(filepath string) (*PDFContent, error)
}

// ExtractionResult is either extracted text or the reason extraction failed.
type ExtractionResult struct {
	Text      string
	PageCount int
	Err       error
}

func (r ExtractionResult) OK() bool {
	return r.Err == nil
}

// Message returns the text on success and the fixed failure sentinel otherwise.
func (r ExtractionResult) Message() string {
	if r.OK() {
		return r.Text
	}
	return ExtractionFailedMessage
}

type PDFContent struct {
	Text      string
	PageCount int
	FilePath  string
}

type pdfParserService struct {
	log *zap.Logger
}

func NewPDFParserService(log *zap.Logger) PDFParserService {
	return &pdfParserService{log: log.Named("pdf")}
}

// Extract reads PDF bytes held in memory. It never panics: the pdf package
// panics on some malformed inputs, which are reported as a failed result.
func (p *pdfParserService) Extract(data []byte) (result ExtractionResult) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Warn("pdf parser panicked", zap.Any("panic", r))
			result = ExtractionResult{Err: fmt.Errorf("%w: malformed document", ErrExtractionFailed)}
		}
	}()

	if len(data) == 0 {
		return ExtractionResult{Err: fmt.Errorf("%w: empty upload", ErrExtractionFailed)}
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		p.log.Warn("failed to open pdf", zap.Error(err))
		return ExtractionResult{Err: fmt.Errorf("%w: %v", ErrExtractionFailed, err)}
	}

	text, pages := readPages(r, false)
	if strings.TrimSpace(text) == "" {
		return ExtractionResult{PageCount: pages, Err: fmt.Errorf("%w: no text content found", ErrExtractionFailed)}
	}

	return ExtractionResult{Text: text, PageCount: pages}
}

func (p *pdfParserService) ExtractTextWithMetaData(filePath string) (*PDFContent, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	text, pages := readPages(r, true)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text content found in PDF")
	}

	return &PDFContent{
		Text:      text,
		PageCount: pages,
		FilePath:  filePath,
	}, nil
}

func readPages(r *pdf.Reader, markPages bool) (string, int) {
	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// unreadable pages are skipped
			continue
		}

		if markPages {
			textBuilder.WriteString(fmt.Sprintf("--- Page %d ---\n", pageIndex))
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return textBuilder.String(), totalPage
}

// CleanText trims every line and drops blank ones.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
