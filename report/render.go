package report

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
)

var (
	ErrEmptyDataset = errors.New("report: dataset is empty")
	ErrRender       = errors.New("report: document layout failed")
)

// Document is the input to the pure layout phase. Assets must already
// be prepared; Render performs no I/O.
type Document struct {
	Params      Params
	GeneratedAt time.Time
	Rows        []Row
	Assets      AssetTable
	RequireRows bool
}

const (
	pageMargin   = 15.0
	lineHeight   = 5.5
	sectionGap   = 6.0
	imageCellW   = 56.0
	imageCellH   = 56.0
	imageGap     = 4.0
	imagesPerRow = 3
)

// Render lays out the report into a PDF and returns the bytes plus a
// deterministic, filesystem-safe suggested filename.
func Render(doc Document) ([]byte, string, error) {
	if doc.RequireRows && len(doc.Rows) == 0 {
		return nil, "", ErrEmptyDataset
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	_, pageH := pdf.GetPageSize()
	bottom := pageH - pageMargin

	writeTitleBlock(pdf, tr, doc)

	for i, row := range doc.Rows {
		if i > 0 {
			pdf.Ln(sectionGap)
		}
		writeSection(pdf, tr, row, doc.Assets, bottom)
		if pdf.Err() {
			break
		}
	}

	if pdf.Err() {
		return nil, "", fmt.Errorf("%w: %v", ErrRender, pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrRender, err)
	}

	return buf.Bytes(), FileName(doc.Params, doc.GeneratedAt), nil
}

func writeTitleBlock(pdf *gofpdf.Fpdf, tr func(string) string, doc Document) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Complaint Report", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, lineHeight, tr("Filters: "+DescribeFilters(doc.Params)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, lineHeight,
		"Generated: "+doc.GeneratedAt.UTC().Format("2006-01-02 15:04:05 MST"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, lineHeight, fmt.Sprintf("Complaints: %d", len(doc.Rows)), "", 1, "L", false, 0, "")

	if len(doc.Rows) == 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, lineHeight, "No complaints matched the selected filters.", "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

// writeSection renders one complaint. The section header is kept with
// at least its first content line across page breaks.
func writeSection(pdf *gofpdf.Fpdf, tr func(string) string, row Row, assets AssetTable, bottom float64) {
	// header + one content line must fit together
	ensureSpace(pdf, 8+lineHeight, bottom)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Complaint #%d - %s", row.ID, row.CustomerName)), "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	writeField(pdf, tr, "Phone", row.Phone)
	if row.Email != "" {
		writeField(pdf, tr, "Email", row.Email)
	}
	writeField(pdf, tr, "Address", row.Address)

	location := row.BuildingName
	if row.ApartmentNumber != "" {
		location += ", Apt " + row.ApartmentNumber
	}
	if row.Area != "" {
		location += " (" + row.Area + ")"
	}
	writeField(pdf, tr, "Location", location)
	writeField(pdf, tr, "Convenient time", SlotLabel(row.ConvenientTime))
	writeField(pdf, tr, "Created", row.CreatedAt)

	if row.Description != "" {
		ensureSpace(pdf, lineHeight*2, bottom)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, lineHeight, "Description:", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		// auto page break wraps long descriptions; never truncated
		pdf.MultiCell(0, lineHeight, tr(row.Description), "", "L", false)
	}

	writeResponses(pdf, tr, row.Responses, bottom)
	writeWorkTimes(pdf, tr, row.WorkTimes, bottom)
	writeImageGrid(pdf, row.ImageURLs, assets, bottom)
}

func writeField(pdf *gofpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.CellFormat(0, lineHeight, tr(label+": "+value), "", 1, "L", false, 0, "")
}

func writeResponses(pdf *gofpdf.Fpdf, tr func(string) string, responses []ResponseRow, bottom float64) {
	if len(responses) == 0 {
		return
	}
	ensureSpace(pdf, lineHeight*2, bottom)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, lineHeight, "Responses:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	for _, r := range responses {
		line := fmt.Sprintf("%s (%s): %s", r.ResponderName, r.CreatedAt.UTC().Format("2006-01-02 15:04"), r.Text)
		pdf.MultiCell(0, lineHeight, tr(line), "", "L", false)
		if r.StartedAt != nil {
			if r.CompletedAt != nil {
				pdf.CellFormat(0, lineHeight,
					"    Duration of service: "+HumanDuration(*r.StartedAt, *r.CompletedAt), "", 1, "L", false, 0, "")
			} else {
				pdf.CellFormat(0, lineHeight, "    Work in progress", "", 1, "L", false, 0, "")
			}
		}
	}
}

func writeWorkTimes(pdf *gofpdf.Fpdf, tr func(string) string, workTimes []WorkTimeRow, bottom float64) {
	if len(workTimes) == 0 {
		return
	}
	ensureSpace(pdf, lineHeight*2, bottom)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, lineHeight, "Work time:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	for _, w := range workTimes {
		line := fmt.Sprintf("%s on %s", w.UserName, w.WorkDate.UTC().Format("2006-01-02"))
		if w.EndTime != nil {
			line += ": " + HumanDuration(w.StartTime, *w.EndTime)
		} else {
			line += ": in progress"
		}
		pdf.CellFormat(0, lineHeight, tr(line), "", 1, "L", false, 0, "")
	}
}

// writeImageGrid embeds prepared assets three per row in input order.
// URLs missing from the asset table (failed fetches) are skipped.
func writeImageGrid(pdf *gofpdf.Fpdf, urls []string, assets AssetTable, bottom float64) {
	col := 0
	rowY := 0.0
	for _, url := range urls {
		asset, ok := assets[url]
		if !ok {
			continue
		}

		name := "img-" + url
		info := pdf.RegisterImageOptionsReader(name,
			gofpdf.ImageOptions{ImageType: asset.Type}, bytes.NewReader(asset.Data))
		if pdf.Err() {
			// bad image data must not sink the document
			pdf.ClearError()
			continue
		}

		w, h := fitBox(info.Width(), info.Height(), imageCellW, imageCellH)

		if col == 0 {
			pdf.Ln(2)
			ensureSpace(pdf, imageCellH+2, bottom)
			rowY = pdf.GetY()
		}

		x := pageMargin + float64(col)*(imageCellW+imageGap)
		pdf.ImageOptions(name, x, rowY, w, h, false,
			gofpdf.ImageOptions{ImageType: asset.Type}, 0, "")

		col++
		if col == imagesPerRow {
			col = 0
			pdf.SetY(rowY + imageCellH + 2)
		}
	}
	if col != 0 {
		pdf.SetY(rowY + imageCellH + 2)
	}
}

// fitBox scales (w, h) proportionally into the bounding box.
func fitBox(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return maxW, maxH
	}
	scale := maxW / w
	if s := maxH / h; s < scale {
		scale = s
	}
	if scale > 1 {
		scale = 1
	}
	return w * scale, h * scale
}

func ensureSpace(pdf *gofpdf.Fpdf, need, bottom float64) {
	if pdf.GetY()+need > bottom {
		pdf.AddPage()
	}
}

// HumanDuration renders the elapsed wall-clock time between two
// timestamps as "H hour(s) and M minute(s)". A negative interval is a
// data anomaly and clamps to zero.
func HumanDuration(start, end time.Time) string {
	total := int(end.Sub(start).Minutes())
	if total < 0 {
		total = 0
	}
	hours := total / 60
	minutes := total % 60
	return fmt.Sprintf("%s and %s", pluralize(hours, "hour"), pluralize(minutes, "minute"))
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// DescribeFilters renders the active filter dimensions as human text
// for the title block and the filename.
func DescribeFilters(p Params) string {
	var parts []string
	switch p.Criterion {
	case CriterionPhone:
		if v := strings.TrimSpace(p.Value); v != "" && v != MatchAll {
			parts = append(parts, "Phone "+v)
		} else {
			parts = append(parts, "All phones")
		}
	case CriterionApartment:
		if v := strings.TrimSpace(p.Value); v != "" && v != MatchAll {
			parts = append(parts, "Apartment "+v)
		} else {
			parts = append(parts, "All apartments")
		}
	case CriterionBuilding:
		if v := strings.TrimSpace(p.Value); v != "" && v != MatchAll {
			parts = append(parts, "Building "+v)
		} else {
			parts = append(parts, "All buildings")
		}
	case CriterionDate:
		parts = append(parts, fmt.Sprintf("Created %s to %s", p.StartDate, p.EndDate))
	}
	if b := strings.TrimSpace(p.BuildingName); b != "" {
		parts = append(parts, "Building "+b)
	}
	if apts := normalizeApartments(p.ApartmentNumbers); len(apts) > 0 {
		parts = append(parts, "Apartments "+strings.Join(apts, ", "))
	}
	if len(parts) == 0 {
		return "All complaints"
	}
	return strings.Join(parts, "; ")
}

// FileName derives a filesystem-safe filename from the filter
// description, a timestamp and a short random suffix.
func FileName(p Params, generatedAt time.Time) string {
	return fmt.Sprintf("complaints-%s-%s-%s.pdf",
		slugify(DescribeFilters(p)),
		generatedAt.UTC().Format("20060102-150405"),
		uuid.NewString()[:8])
}

func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
