package extract_test

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/notework-lab/notework/pkg/service/extract"
	"github.com/xuri/excelize/v2"
)

func TestExtractPlainText(t *testing.T) {
	x := extract.New()
	got, err := x.Extract(context.Background(), []byte("hello world"), "txt")
	gt.NoError(t, err).Required()
	gt.Value(t, got).Equal("hello world")
}

func TestExtractDataURL(t *testing.T) {
	x := extract.New()
	payload := base64.StdEncoding.EncodeToString([]byte("# notes\n- one"))
	blob := []byte("data:text/markdown;base64," + payload)

	got, err := x.Extract(context.Background(), blob, ".md")
	gt.NoError(t, err).Required()
	gt.Value(t, got).Equal("# notes\n- one")
}

func TestExtractXLSX(t *testing.T) {
	f := excelize.NewFile()
	gt.NoError(t, f.SetCellValue("Sheet1", "A1", "name")).Required()
	gt.NoError(t, f.SetCellValue("Sheet1", "B1", "count")).Required()
	gt.NoError(t, f.SetCellValue("Sheet1", "A2", "widgets")).Required()
	gt.NoError(t, f.SetCellValue("Sheet1", "B2", 42)).Required()
	buf, err := f.WriteToBuffer()
	gt.NoError(t, err).Required()

	x := extract.New()
	got, err := x.Extract(context.Background(), buf.Bytes(), "xlsx")
	gt.NoError(t, err).Required()
	gt.String(t, got).Contains("## Sheet: Sheet1")
	gt.String(t, got).Contains("name\tcount")
	gt.String(t, got).Contains("widgets\t42")
}

func TestExtractCorruptPDF(t *testing.T) {
	x := extract.New()
	_, err := x.Extract(context.Background(), []byte("not a pdf at all"), "pdf")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, extract.ErrUnsupportedFileType)).False()
}

func TestExtractCorruptXLSX(t *testing.T) {
	x := extract.New()
	_, err := x.Extract(context.Background(), []byte("not a zip archive"), "xlsx")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, extract.ErrUnsupportedFileType)).False()
}

func TestExtractUnsupportedType(t *testing.T) {
	x := extract.New()
	_, err := x.Extract(context.Background(), []byte{0x01, 0x02, 0x03, 0x04}, "docx")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, extract.ErrUnsupportedFileType)).True()
}

func TestExtractMalformedDataURL(t *testing.T) {
	x := extract.New()
	_, err := x.Extract(context.Background(), []byte("data:text/plain;base64"), "txt")
	gt.Error(t, err)
}

func TestExtractInvalidUTF8(t *testing.T) {
	x := extract.New()
	_, err := x.Extract(context.Background(), []byte{0xff, 0xfe, 0x00}, "txt")
	gt.Error(t, err)
}
