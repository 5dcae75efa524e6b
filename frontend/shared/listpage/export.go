package listpage

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/uptrace/bun"

	"stockboard/infrastructure/erp"
	"stockboard/infrastructure/sqlite"
	"stockboard/listview"
	"stockboard/models"
)

// BuildExportSpec assembles the one-shot export spec from the request.
// "cols" names the user-chosen column subset in order; absent or empty it
// means all configured columns.
func BuildExportSpec(r *http.Request, cfg Config) listview.ExportSpec {
	spec := listview.ExportSpec{
		Scope:   listview.ParseScope(r.URL.Query().Get("scope")),
		Columns: cfg.Columns,
		Summary: cfg.Summary,
	}
	raw := strings.TrimSpace(r.URL.Query().Get("cols"))
	if raw == "" {
		return spec
	}
	byID := make(map[string]listview.Column, len(cfg.Columns))
	for _, col := range cfg.Columns {
		byID[col.ID] = col
	}
	chosen := make([]listview.Column, 0, len(cfg.Columns))
	for _, id := range strings.Split(raw, ",") {
		if col, ok := byID[strings.TrimSpace(id)]; ok {
			chosen = append(chosen, col)
		}
	}
	if len(chosen) > 0 {
		spec.Columns = chosen
	}
	return spec
}

// WriteCSV streams an export payload as a CSV attachment.
func WriteCSV(w http.ResponseWriter, filename string, export listview.Export) error {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(export.Header); err != nil {
		return err
	}
	for _, record := range export.Body {
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	for _, item := range export.Summary {
		if err := writer.Write([]string{item.Label, item.Value}); err != nil {
			return err
		}
	}
	return writer.Error()
}

// WritePDF renders an export payload as a landscape A4 table.
func WritePDF(w io.Writer, title string, export listview.Export) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right
	colWidth := usable
	if len(export.Header) > 0 {
		colWidth = usable / float64(len(export.Header))
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(235, 235, 235)
	for _, h := range export.Header {
		pdf.CellFormat(colWidth, 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, record := range export.Body {
		for _, cell := range record {
			pdf.CellFormat(colWidth, 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(export.Summary) > 0 {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 9)
		for _, item := range export.Summary {
			pdf.CellFormat(0, 6, fmt.Sprintf("%s: %s", item.Label, item.Value), "", 1, "L", false, 0, "")
		}
	}

	return pdf.Output(w)
}

// RecordExportRun stores one export-history row; failures are logged, not
// surfaced, since the export itself already succeeded.
func RecordExportRun(ctx context.Context, db *sqlite.DB, userID int64, cfg Config, exportType string, scope listview.Scope, rowCount int) {
	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		run := &models.ExportRun{
			UserID:     userID,
			PageKey:    cfg.Key,
			ExportType: exportType,
			Scope:      string(scope),
			RowCount:   int64(rowCount),
		}
		_, err := tx.NewInsert().Model(run).Exec(ctx)
		return err
	})
	if err != nil {
		slog.Error("record export run failed", slog.String("page", cfg.Key), slog.String("type", exportType), slog.Any("err", err))
	}
}

// ExportDeps are the collaborators a generic export handler needs.
type ExportDeps struct {
	DB     *sqlite.DB
	ERP    *erp.Client
	Tenant models.TenantLink
}

// CSVHandler serves the page's rows as CSV honoring the live filter,
// pagination and selection state carried in the query string.
func CSVHandler(cfg Config, deps ExportDeps, sessionUserID func(*http.Request) (models.Session, bool)) http.HandlerFunc {
	return exportHandler(cfg, deps, sessionUserID, "csv")
}

// PDFHandler is CSVHandler's PDF twin.
func PDFHandler(cfg Config, deps ExportDeps, sessionUserID func(*http.Request) (models.Session, bool)) http.HandlerFunc {
	return exportHandler(cfg, deps, sessionUserID, "pdf")
}

func exportHandler(cfg Config, deps ExportDeps, sessionFrom func(*http.Request) (models.Session, bool), format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFrom(r)
		if !ok {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		state := ParseState(r, cfg, DefaultPageSize)
		rc := RequestContextFor(session, deps.Tenant)
		rows, err := Fetch(r.Context(), deps.ERP, rc, cfg)
		if err != nil {
			slog.Error("export fetch failed", slog.String("page", cfg.Key), slog.Any("err", err))
			http.Error(w, "failed to load records", http.StatusBadGateway)
			return
		}

		vm := Resolve(rows, state, cfg)
		spec := BuildExportSpec(r, cfg)
		export := listview.Project(vm.Filtered, vm.Page.Rows, state.Selected, spec)

		if format == "pdf" {
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", "attachment; filename="+cfg.Key+".pdf")
			if err := WritePDF(w, cfg.Title, export); err != nil {
				slog.Error("export pdf failed", slog.String("page", cfg.Key), slog.Any("err", err))
				return
			}
		} else {
			if err := WriteCSV(w, cfg.Key+".csv", export); err != nil {
				slog.Error("export csv failed", slog.String("page", cfg.Key), slog.Any("err", err))
				return
			}
		}

		RecordExportRun(r.Context(), deps.DB, session.UserID, cfg, format, spec.Scope, len(export.Body))
	}
}
