package client

import (
	"fmt"
	"strings"

	"github.com/Aashish23092/curriculum-ats/logger"
	"github.com/otiai10/gosseract/v2"
)

// TesseractClient runs OCR over page images of scanned résumés.
type TesseractClient struct {
	dataPath  string
	languages []string
}

// NewTesseractClient creates a client that loads traineddata from dataPath.
// Languages default to Portuguese then English.
func NewTesseractClient(dataPath string, languages ...string) *TesseractClient {
	if len(languages) == 0 {
		languages = []string{"por", "eng"}
	}
	return &TesseractClient{
		dataPath:  dataPath,
		languages: languages,
	}
}

// Languages returns the tesseract language codes, e.g. "por+eng".
func (tc *TesseractClient) Languages() string {
	return strings.Join(tc.languages, "+")
}

func (tc *TesseractClient) newClient(img []byte) (*gosseract.Client, error) {
	client := gosseract.NewClient()

	if tc.dataPath != "" {
		client.SetTessdataPrefix(tc.dataPath)
	}
	if err := client.SetLanguage(tc.languages...); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(img); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set image: %w", err)
	}
	return client, nil
}

// ExtractTextAndQuality returns the recognized text and the mean word
// confidence (0-100). A failed confidence lookup yields 0, not an error.
func (tc *TesseractClient) ExtractTextAndQuality(img []byte) (string, float64, error) {
	client, err := tc.newClient(img)
	if err != nil {
		return "", 0, err
	}
	defer client.Close()

	text, err := client.Text()
	if err != nil {
		return "", 0, fmt.Errorf("failed to extract text: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return text, 0, nil
	}

	var totalConf float64
	for _, box := range boxes {
		totalConf += box.Confidence
	}

	avgConf := 0.0
	if len(boxes) > 0 {
		avgConf = totalConf / float64(len(boxes))
	}

	return text, avgConf, nil
}

// Close performs cleanup
func (tc *TesseractClient) Close() {
	logger.Debug().Msg("tesseract client closed")
}
