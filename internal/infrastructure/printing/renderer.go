// Package printing renders sale receipts as HTML and converts them to PDF
// through a headless Chrome.
package printing

import "context"

// Receipt paper is 80mm wide with a continuous roll.
const (
	ReceiptPaperWidthMM  = 80
	receiptPaperHeightMM = 3000
	receiptMarginMM      = 4
)

// PDFConverter turns a complete HTML document into a PDF
type PDFConverter interface {
	HTMLToPDF(ctx context.Context, html string) ([]byte, error)
	Close() error
}

// RenderError represents an error during receipt rendering
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for rendering failures
const (
	ErrCodeRenderTimeout = "RENDER_TIMEOUT"
	ErrCodeRenderFailed  = "RENDER_FAILED"
	ErrCodeInvalidHTML   = "INVALID_HTML"
	ErrCodeTemplate      = "TEMPLATE_FAILED"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
