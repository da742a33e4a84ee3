package service

import (
	"bytes"
	"cmp"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFProcessor reads the text layer of a PDF and, for scanned documents, the
// page images that carry the text instead.
type PDFProcessor interface {
	ExtractText(pdfData []byte) (string, error)
	ExtractImages(pdfData []byte) ([][]byte, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

// ExtractText returns the text layer one visual row per line. The line
// structure matters to the name and experience heuristics downstream.
func (p *pdfProcessor) ExtractText(pdfData []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", pageIndex, err)
		}
		for _, row := range rows {
			for _, word := range row.Content {
				textBuilder.WriteString(word.S)
			}
			textBuilder.WriteString("\n")
		}
	}
	return textBuilder.String(), nil
}

// ExtractImages returns the encoded images embedded in the PDF, in page
// order.
func (p *pdfProcessor) ExtractImages(pdfData []byte) ([][]byte, error) {
	tempDir, err := os.MkdirTemp("", "curriculum-images")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	pdfPath := filepath.Join(tempDir, "source.pdf")
	if err := os.WriteFile(pdfPath, pdfData, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write pdf data: %w", err)
	}

	imageDir := filepath.Join(tempDir, "images")
	if err := os.Mkdir(imageDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create image dir: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractImagesFile(pdfPath, imageDir, nil, conf); err != nil {
		return nil, fmt.Errorf("failed to extract images: %w", err)
	}

	files, err := os.ReadDir(imageDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read image dir: %w", err)
	}

	var names []string
	for _, file := range files {
		if !file.IsDir() {
			names = append(names, file.Name())
		}
	}

	var images [][]byte
	for _, name := range sortByPage(names) {
		data, err := os.ReadFile(filepath.Join(imageDir, name))
		if err != nil {
			continue
		}
		images = append(images, data)
	}

	return images, nil
}

// pdfcpu names extracted images <source>_<page>_<object>.<ext>.
var imagePageNumber = regexp.MustCompile(`_(\d+)_[^_]+$`)

// sortByPage orders image file names by page number. Names on the same page
// keep their relative order; names without a page number go last.
func sortByPage(names []string) []string {
	page := func(name string) int {
		m := imagePageNumber.FindStringSubmatch(strings.TrimSuffix(name, filepath.Ext(name)))
		if m == nil {
			return math.MaxInt
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return math.MaxInt
		}
		return n
	}

	sorted := slices.Clone(names)
	slices.SortStableFunc(sorted, func(a, b string) int {
		return cmp.Compare(page(a), page(b))
	})
	return sorted
}
