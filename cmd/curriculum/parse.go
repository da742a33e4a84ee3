package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aashish23092/curriculum-ats/client"
	"github.com/Aashish23092/curriculum-ats/logger"
	"github.com/Aashish23092/curriculum-ats/service"
	"github.com/Aashish23092/curriculum-ats/utils/curriculum"
)

var parseOpts struct {
	mimeType string
	noOCR    bool
	compact  bool
}

var parseCmd = &cobra.Command{
	Use:   "parse <file|->",
	Short: "Extract a profile from a résumé file and print it as JSON",
	Long: `Decode a PDF, DOC, DOCX or plain text résumé and print the extracted profile.
Use "-" to read plain text from stdin. The media type is sniffed unless --mime is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVar(&parseOpts.mimeType, "mime", "", "media type of the input, e.g. application/pdf")
	parseCmd.Flags().BoolVar(&parseOpts.noOCR, "no-ocr", false, "never fall back to OCR for scanned PDFs")
	parseCmd.Flags().BoolVar(&parseOpts.compact, "compact", false, "print JSON on a single line")
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, declared, err := readInput(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}
	if parseOpts.mimeType != "" {
		declared = parseOpts.mimeType
	}
	mimeType := service.DetectMimeType(declared, data)

	var ocr service.OCRClient
	if cfg.OCR.Enabled && !parseOpts.noOCR {
		tesseractClient := client.NewTesseractClient(cfg.OCR.TessdataPrefix, cfg.OCR.Languages...)
		defer tesseractClient.Close()
		ocr = tesseractClient
	}
	decoder := service.NewDocumentDecoder(service.NewPDFProcessor(), ocr, cfg.OCR.MinChars)

	text, err := decoder.Decode(cmd.Context(), data, mimeType)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", args[0], err)
	}
	logger.Debug().Str("mime_type", mimeType).Int("text_length", len(text)).Msg("document decoded")

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	if !parseOpts.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(curriculum.ParseCurriculum(text))
}

// readInput returns the file contents and the media type implied by the
// source; stdin is always plain text.
func readInput(stdin io.Reader, name string) ([]byte, string, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("reading stdin: %w", err)
		}
		return data, service.MimeText, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, "", err
	}
	return data, "", nil
}
