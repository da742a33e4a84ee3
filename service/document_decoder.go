package service

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"strings"
	"unicode/utf8"

	"code.sajari.com/docconv"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/encoding/charmap"

	"github.com/Aashish23092/curriculum-ats/logger"
)

// Accepted curriculum formats.
const (
	MimePDF  = "application/pdf"
	MimeDoc  = "application/msword"
	MimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain"
)

// defaultOCRMinChars is the text-layer length under which a PDF is treated
// as scanned.
const defaultOCRMinChars = 20

// OCRClient recognizes text in an encoded image.
type OCRClient interface {
	ExtractTextAndQuality(img []byte) (string, float64, error)
}

// DocumentDecoder turns an uploaded file into plain text.
type DocumentDecoder interface {
	Decode(ctx context.Context, data []byte, mimeType string) (string, error)
}

type documentDecoder struct {
	pdf         PDFProcessor
	ocr         OCRClient
	ocrMinChars int
}

// NewDocumentDecoder wires the PDF reader and an optional OCR fallback. A nil
// ocr disables the fallback; ocrMinChars <= 0 uses the default threshold.
func NewDocumentDecoder(pdf PDFProcessor, ocr OCRClient, ocrMinChars int) DocumentDecoder {
	if ocrMinChars <= 0 {
		ocrMinChars = defaultOCRMinChars
	}
	return &documentDecoder{pdf: pdf, ocr: ocr, ocrMinChars: ocrMinChars}
}

// Decode dispatches on the media type. Parameters such as charset are
// ignored. Unknown types fail with ErrUnsupportedFormat.
func (d *documentDecoder) Decode(ctx context.Context, data []byte, mimeType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}

	switch baseMediaType(mimeType) {
	case MimePDF:
		return d.decodePDF(ctx, data)
	case MimeDocx:
		text, _, err := docconv.ConvertDocx(bytes.NewReader(data))
		if err != nil {
			return "", fmt.Errorf("failed to read docx: %w", err)
		}
		return text, nil
	case MimeDoc:
		text, _, err := docconv.ConvertDoc(bytes.NewReader(data))
		if err != nil {
			return "", fmt.Errorf("failed to read doc: %w", err)
		}
		return text, nil
	case MimeText:
		return decodePlainText(data), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mimeType)
	}
}

func (d *documentDecoder) decodePDF(ctx context.Context, data []byte) (string, error) {
	text, err := d.pdf.ExtractText(data)
	if err != nil {
		return "", err
	}
	if d.ocr == nil || utf8.RuneCountInString(strings.TrimSpace(text)) >= d.ocrMinChars {
		return text, nil
	}

	logger.Ctx(ctx).Info().Int("text_length", len(text)).Msg("pdf text layer too short, falling back to OCR")

	images, err := d.pdf.ExtractImages(data)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("image extraction failed, keeping text layer")
		return text, nil
	}

	var ocrText strings.Builder
	for i, img := range images {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		pageText, confidence, err := d.ocr.ExtractTextAndQuality(img)
		if err != nil {
			logger.Ctx(ctx).Warn().Err(err).Int("image", i).Msg("OCR failed for image")
			continue
		}
		logger.Ctx(ctx).Debug().Int("image", i).Float64("confidence", confidence).Msg("OCR image processed")
		ocrText.WriteString(pageText)
		ocrText.WriteString("\n")
	}

	if strings.TrimSpace(ocrText.String()) == "" {
		return text, nil
	}
	return ocrText.String(), nil
}

// decodePlainText accepts UTF-8, with or without a BOM, and falls back to
// Windows-1252, the usual encoding of text files saved on Brazilian desktops.
func decodePlainText(data []byte) string {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "")
	}
	return string(decoded)
}

// DetectMimeType returns the declared media type, or sniffs the content when
// the client sent none or a generic binary type.
func DetectMimeType(declared string, data []byte) string {
	base := baseMediaType(declared)
	if base != "" && base != "application/octet-stream" {
		return base
	}
	return baseMediaType(mimetype.Detect(data).String())
}

func baseMediaType(mimeType string) string {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(mimeType))
	}
	return mediaType
}

// SupportedMimeType reports whether Decode accepts mimeType.
func SupportedMimeType(mimeType string) bool {
	switch baseMediaType(mimeType) {
	case MimePDF, MimeDoc, MimeDocx, MimeText:
		return true
	}
	return false
}
