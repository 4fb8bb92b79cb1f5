package extract

import (
	"bytes"
	"context"
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFileType is returned for binary formats without an extractor
var ErrUnsupportedFileType = goerr.New("unsupported file type")

// Extractor resolves uploaded file blobs to text. Text-like formats are
// decoded directly, PDF and xlsx go through dedicated extractors, and the
// remaining binary formats fail so the engine reports the failure instead
// of caching junk.
type Extractor struct{}

// New creates a file text extractor
func New() *Extractor {
	return &Extractor{}
}

// textFileTypes are decoded as UTF-8 without further processing
var textFileTypes = map[string]bool{
	"txt":      true,
	"md":       true,
	"markdown": true,
	"csv":      true,
	"json":     true,
	"html":     true,
	"xml":      true,
	"log":      true,
}

// Extract converts a file blob to text. The blob may be raw bytes or a
// base64 data URL as produced by browser file readers.
func (x *Extractor) Extract(ctx context.Context, blob []byte, fileType string) (string, error) {
	data, err := decodeBlob(blob)
	if err != nil {
		return "", err
	}

	fileType = strings.ToLower(strings.TrimPrefix(fileType, "."))

	switch {
	case textFileTypes[fileType]:
		if !utf8.Valid(data) {
			return "", goerr.New("file is not valid UTF-8 text", goerr.V("fileType", fileType))
		}
		return string(data), nil

	case fileType == "pdf":
		return extractPDF(data)

	case fileType == "xlsx":
		return extractXLSX(data)
	}

	return "", goerr.Wrap(ErrUnsupportedFileType, "no extractor for file type",
		goerr.V("fileType", fileType))
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", goerr.Wrap(err, "failed to open PDF")
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", goerr.Wrap(err, "failed to extract PDF text")
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", goerr.Wrap(err, "failed to read PDF text")
	}
	return buf.String(), nil
}

// extractXLSX renders each sheet as a tab-separated table under a
// "## Sheet: name" heading
func extractXLSX(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", goerr.Wrap(err, "failed to open xlsx")
	}
	defer f.Close()

	var sb strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", goerr.Wrap(err, "failed to read sheet", goerr.V("sheet", sheet))
		}

		sb.WriteString("## Sheet: ")
		sb.WriteString(sheet)
		sb.WriteString("\n\n")
		for _, row := range rows {
			sb.WriteString(strings.Join(row, "\t"))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// decodeBlob unwraps data URLs ("data:mime;base64,....") and decodes
// base64 payloads; raw bytes pass through unchanged
func decodeBlob(blob []byte) ([]byte, error) {
	s := string(blob)

	if strings.HasPrefix(s, "data:") {
		idx := strings.IndexByte(s, ',')
		if idx < 0 {
			return nil, goerr.New("malformed data URL")
		}
		payload := s[idx+1:]
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to decode base64 payload")
		}
		return decoded, nil
	}

	return blob, nil
}
