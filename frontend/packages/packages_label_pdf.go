package packages

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/jung-kurt/gofpdf"
)

// LabelData holds what goes on a printed package label.
type LabelData struct {
	PackageID   int64
	Name        string
	PackageType string
	Location    string
}

func renderPackageLabelPDF(label LabelData, printedAt time.Time) ([]byte, string, error) {
	barcodeValue := strings.TrimSpace(label.Name)
	if barcodeValue == "" {
		barcodeValue = fmt.Sprintf("PACK%07d", label.PackageID)
	}
	barcodePNG, err := renderCode128PNG(barcodeValue, 1200, 260)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Package Label", false)
	pdf.AddPage()

	packageType := strings.TrimSpace(label.PackageType)
	if packageType == "" {
		packageType = "Standard"
	}
	location := strings.TrimSpace(label.Location)
	if location == "" {
		location = "Unassigned"
	}

	pdf.SetFont("Helvetica", "B", 52)
	pdf.CellFormat(0, 22, barcodeValue, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 16)
	pdf.CellFormat(0, 9, "Type: "+packageType, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 9, "Location: "+location, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 9, "Printed: "+printedAt.Format("02/01/2006"), "", 1, "C", false, 0, "")

	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	imageName := fmt.Sprintf("package-barcode-%d", label.PackageID)
	pdf.RegisterImageOptionsReader(imageName, opt, bytes.NewReader(barcodePNG))
	pageW, _ := pdf.GetPageSize()
	imgW := 240.0
	imgH := 56.0
	x := (pageW - imgW) / 2
	y := 96.0
	pdf.ImageOptions(imageName, x, y, imgW, imgH, false, opt, 0, "")

	pdf.SetY(y + imgH + 6)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 12, barcodeValue, "", 1, "C", false, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, "", err
	}
	return out.Bytes(), barcodeValue, nil
}

func renderCode128PNG(value string, width, height int) ([]byte, error) {
	code, err := code128.Encode(value)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, err
	}
	normalized := toNRGBA(scaled)
	var barcodePNG bytes.Buffer
	if err := png.Encode(&barcodePNG, normalized); err != nil {
		return nil, err
	}
	return barcodePNG.Bytes(), nil
}

// gofpdf's PNG reader chokes on paletted output, so normalize first.
func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}
