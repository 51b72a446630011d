package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"salarydash/internal/models"
)

const (
	exportSheet     = "records"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportFileName  = "salaries.xlsx"
)

var exportHeader = []interface{}{
	"year", "seniority", "contract", "company_size", "title", "salary_usd", "remote_mode", "residence_iso3",
}

// ExportRecords downloads the whole filtered view as an XLSX workbook.
func (h *Handler) ExportRecords(c echo.Context) error {
	st, err := h.dataset()
	if err != nil {
		return err
	}
	sel, err := parseSelection(c.QueryParams(), st.options)
	if err != nil {
		return err
	}
	if notModified(c, entityTag(st.store.Fingerprint, "export", "", sel)) {
		return c.NoContent(http.StatusNotModified)
	}

	start := time.Now()
	view := st.store.Apply(sel)
	var buf bytes.Buffer
	if err := writeXLSX(&buf, view.Records(0, 0)); err != nil {
		return fmt.Errorf("render xlsx: %w", err)
	}
	h.telemetry.observe("export", view.Len(), time.Since(start))

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", exportFileName))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

// writeXLSX streams records into a single-sheet workbook.
func writeXLSX(w io.Writer, records []models.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(exportSheet)
	if err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", exportHeader, excelize.RowOpts{StyleID: style}); err != nil {
		return err
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.Year, r.Seniority, r.Contract, r.CompanySize, r.Title, r.SalaryUSD, r.RemoteMode, r.Country}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.Write(w)
}
