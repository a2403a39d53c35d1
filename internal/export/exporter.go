package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/sandeepvarma05/event-planner-backend/internal/budget"
)

// Exporter renders projections into downloadable documents.
type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

// ===========================
// 📄 Account JSON
// ===========================

// AccountJSON marshals the export document. Building it from maps gets
// deterministic output: encoding/json writes map keys in sorted order.
func (e *Exporter) AccountJSON(appVersion string, profile *Profile, hosted []HostedEvent, attending []AttendingEvent, tickets []Ticket) ([]byte, string, string, error) {
	iso := func(t time.Time) string { return t.UTC().Format(time.RFC3339) }
	isoPtr := func(t *time.Time) interface{} {
		if t == nil {
			return nil
		}
		return iso(*t)
	}

	hostedDocs := make([]map[string]interface{}, 0, len(hosted))
	for _, ev := range hosted {
		fns := make([]map[string]interface{}, 0, len(ev.Functions))
		for _, f := range ev.Functions {
			fns = append(fns, map[string]interface{}{
				"id":        f.ID,
				"name":      f.Name,
				"startTime": iso(f.StartTime),
				"endTime":   isoPtr(f.EndTime),
			})
		}
		hostedDocs = append(hostedDocs, map[string]interface{}{
			"id":           ev.ID,
			"title":        ev.Title,
			"description":  ev.Description,
			"category":     ev.Category,
			"startTime":    iso(ev.StartTime),
			"endTime":      isoPtr(ev.EndTime),
			"locationName": ev.LocationName,
			"privacy":      ev.Privacy,
			"createdAt":    iso(ev.CreatedAt),
			"guestCount":   ev.GuestCount,
			"functions":    fns,
		})
	}

	attendingDocs := make([]map[string]interface{}, 0, len(attending))
	for _, a := range attending {
		attendingDocs = append(attendingDocs, map[string]interface{}{
			"title":       a.Title,
			"date":        iso(a.Date),
			"rsvpStatus":  a.RSVPStatus,
			"respondedAt": isoPtr(a.RespondedAt),
		})
	}

	ticketDocs := make([]map[string]interface{}, 0, len(tickets))
	for _, t := range tickets {
		ticketDocs = append(ticketDocs, map[string]interface{}{
			"eventId":    t.EventID,
			"eventTitle": t.EventTitle,
			"guestId":    t.GuestID,
			"deepLink":   t.DeepLink,
		})
	}

	doc := map[string]interface{}{
		"exportDate": iso(time.Now()),
		"appVersion": appVersion,
		"profile": map[string]interface{}{
			"id":    profile.ID,
			"name":  profile.Name,
			"email": profile.Email,
		},
		"hostedEvents":    hostedDocs,
		"attendingEvents": attendingDocs,
		"tickets":         ticketDocs,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, "", "", err
	}
	return data, "account_export.json", "application/json", nil
}

// ===========================
// 📊 Guest List XLSX / CSV
// ===========================

var guestHeaders = []string{"Name", "Email", "Phone", "Status", "Role", "Plus Ones", "Party Size", "Meal Choice", "Responded At"}

func guestRecord(g GuestRow) []string {
	responded := ""
	if g.RespondedAt != nil {
		responded = g.RespondedAt.Format("2006-01-02 15:04:05")
	}
	return []string{
		g.Name, g.Email, g.Phone, g.Status, g.Role,
		strconv.Itoa(g.PlusOneCount), strconv.Itoa(g.PartySize),
		g.MealChoice, responded,
	}
}

func (e *Exporter) GuestListExcel(eventTitle string, rows []GuestRow) ([]byte, string, string, error) {
	f := excelize.NewFile()
	sheet := "Guest List"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", "", err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for i, h := range guestHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", "", err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, g := range rows {
		for cIdx, v := range guestRecord(g) {
			cell, err := excelize.CoordinatesToCellName(cIdx+1, rIdx+2)
			if err != nil {
				return nil, "", "", err
			}
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), "guest_list.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
}

func (e *Exporter) GuestListCSV(rows []GuestRow) ([]byte, string, string, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if err := w.Write(guestHeaders); err != nil {
		return nil, "", "", err
	}
	for _, g := range rows {
		if err := w.Write(guestRecord(g)); err != nil {
			return nil, "", "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), "guest_list.csv", "text/csv", nil
}

// ===========================
// 💰 Budget PDF
// ===========================

func (e *Exporter) BudgetPDF(eventTitle string, summary *budget.Summary) ([]byte, string, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Budget Report")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(40, 8, eventTitle)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(60, 7, fmt.Sprintf("Total Budget: %.2f", summary.TotalBudget))
	pdf.Ln(6)
	pdf.Cell(60, 7, fmt.Sprintf("Total Spent: %.2f (%.2f%%)", summary.TotalSpent, summary.PercentSpent))
	pdf.Ln(6)
	pdf.Cell(60, 7, fmt.Sprintf("Remaining: %.2f", summary.Remaining))
	pdf.Ln(10)

	headers := []string{"Category", "Allocated", "Spent", "% Spent", "Over?"}
	widths := []float64{70, 30, 30, 25, 20}

	pdf.SetFont("Arial", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, c := range summary.Categories {
		over := ""
		if c.IsOverBudget {
			over = "YES"
		}
		pdf.CellFormat(widths[0], 6, c.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, fmt.Sprintf("%.2f", c.Allocated), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 6, fmt.Sprintf("%.2f", c.Spent), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, fmt.Sprintf("%.2f", c.PercentSpent), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, over, "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	if len(summary.Splits) > 0 {
		pdf.Ln(8)
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(40, 8, "Payment Splits")
		pdf.Ln(8)

		splitHeaders := []string{"Name", "Share", "Paid", "Balance"}
		splitWidths := []float64{80, 35, 35, 35}
		pdf.SetFont("Arial", "B", 10)
		for i, h := range splitHeaders {
			pdf.CellFormat(splitWidths[i], 7, h, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 10)
		for _, sp := range summary.Splits {
			pdf.CellFormat(splitWidths[0], 6, sp.Name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(splitWidths[1], 6, fmt.Sprintf("%.2f", sp.ShareAmount), "1", 0, "R", false, 0, "")
			pdf.CellFormat(splitWidths[2], 6, fmt.Sprintf("%.2f", sp.PaidAmount), "1", 0, "R", false, 0, "")
			pdf.CellFormat(splitWidths[3], 6, fmt.Sprintf("%.2f", sp.Balance), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), "budget_report.pdf", "application/pdf", nil
}
