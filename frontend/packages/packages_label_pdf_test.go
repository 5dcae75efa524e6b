package packages

import (
	"bytes"
	"testing"
	"time"
)

func TestRenderPackageLabelPDF_GeneratesPDF(t *testing.T) {
	t.Parallel()

	pdf, code, err := renderPackageLabelPDF(LabelData{
		PackageID:   14,
		Name:        "PACK0000014",
		PackageType: "Euro Pallet",
		Location:    "WH/Stock/Shelf 2",
	}, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("renderPackageLabelPDF returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("expected non-empty pdf bytes")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("expected pdf header, got %q", pdf[:8])
	}
	if code != "PACK0000014" {
		t.Fatalf("expected barcode code PACK0000014, got %q", code)
	}
}

func TestRenderPackageLabelPDF_FallbackBarcode(t *testing.T) {
	t.Parallel()

	_, code, err := renderPackageLabelPDF(LabelData{PackageID: 7}, time.Now())
	if err != nil {
		t.Fatalf("renderPackageLabelPDF returned error: %v", err)
	}
	if code != "PACK0000007" {
		t.Fatalf("expected fallback code PACK0000007, got %q", code)
	}
}
