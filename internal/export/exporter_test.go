package export_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/sandeepvarma05/event-planner-backend/internal/budget"
	"github.com/sandeepvarma05/event-planner-backend/internal/export"
)

func TestAccountJSONShape(t *testing.T) {
	e := export.NewExporter()

	responded := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	data, filename, mime, err := e.AccountJSON("1.4.0",
		&export.Profile{ID: 7, Name: "Sam Rivera", Email: "sam@example.com"},
		[]export.HostedEvent{{
			ID: "11111111-1111-1111-1111-111111111111", Title: "Housewarming",
			Privacy: "private", StartTime: time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC),
			CreatedAt: time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC), GuestCount: 12,
			Functions: []export.HostedFunction{{ID: "f1", Name: "Dinner", StartTime: time.Date(2026, 6, 1, 19, 0, 0, 0, time.UTC)}},
		}},
		[]export.AttendingEvent{{Title: "Wedding", Date: time.Date(2026, 9, 12, 16, 0, 0, 0, time.UTC), RSVPStatus: "attending", RespondedAt: &responded}},
		[]export.Ticket{{
			EventID:    "22222222-2222-2222-2222-222222222222",
			EventTitle: "Wedding",
			GuestID:    "33333333-3333-3333-3333-333333333333",
			DeepLink:   "planora://rsvp/22222222-2222-2222-2222-222222222222/33333333-3333-3333-3333-333333333333",
		}},
	)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if filename != "account_export.json" || mime != "application/json" {
		t.Fatalf("filename=%q mime=%q", filename, mime)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	for _, key := range []string{"exportDate", "appVersion", "profile", "hostedEvents", "attendingEvents", "tickets"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}

	hosted := doc["hostedEvents"].([]interface{})[0].(map[string]interface{})
	if hosted["startTime"] != "2026-06-01T18:00:00Z" {
		t.Errorf("startTime = %v, want RFC3339 UTC", hosted["startTime"])
	}
	if hosted["endTime"] != nil {
		t.Errorf("missing endTime should render null, got %v", hosted["endTime"])
	}

	attending := doc["attendingEvents"].([]interface{})[0].(map[string]interface{})
	if attending["respondedAt"] != "2026-03-01T10:30:00Z" {
		t.Errorf("respondedAt = %v", attending["respondedAt"])
	}

	ticket := doc["tickets"].([]interface{})[0].(map[string]interface{})
	link := ticket["deepLink"].(string)
	if !strings.HasPrefix(link, "planora://rsvp/") {
		t.Errorf("deep link %q has wrong shape", link)
	}

	// Marshalling maps keeps keys sorted, so repeated exports diff cleanly.
	again, _, _, err := e.AccountJSON("1.4.0",
		&export.Profile{ID: 7, Name: "Sam Rivera", Email: "sam@example.com"},
		nil, nil, nil)
	if err != nil {
		t.Fatalf("second export: %v", err)
	}
	idx := func(b []byte) []int {
		var out []int
		for _, k := range []string{`"appVersion"`, `"attendingEvents"`, `"exportDate"`, `"hostedEvents"`, `"profile"`, `"tickets"`} {
			out = append(out, bytes.Index(b, []byte(k)))
		}
		return out
	}
	positions := idx(again)
	for i := 1; i < len(positions); i++ {
		if positions[i] < positions[i-1] {
			t.Fatal("top-level keys are not in sorted order")
		}
	}
}

func TestGuestListCSV(t *testing.T) {
	e := export.NewExporter()

	responded := time.Date(2026, 2, 14, 20, 5, 0, 0, time.UTC)
	rows := []export.GuestRow{
		{Name: "Nina Patel", Email: "nina@example.com", Phone: "+15550101", Status: "attending", Role: "vip", PlusOneCount: 1, PartySize: 2, MealChoice: "veg", RespondedAt: &responded},
		{Name: "Omar Díaz", Status: "pending", Role: "guest", PartySize: 1},
	}

	data, filename, mime, err := e.GuestListCSV(rows)
	if err != nil {
		t.Fatalf("csv export: %v", err)
	}
	if filename != "guest_list.csv" || mime != "text/csv" {
		t.Fatalf("filename=%q mime=%q", filename, mime)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(records))
	}
	if records[0][0] != "Name" || records[0][6] != "Party Size" {
		t.Fatalf("header row wrong: %v", records[0])
	}
	if records[1][0] != "Nina Patel" || records[1][6] != "2" || records[1][8] != "2026-02-14 20:05:00" {
		t.Fatalf("data row wrong: %v", records[1])
	}
	if records[2][8] != "" {
		t.Fatalf("no-response guest should have empty responded column, got %q", records[2][8])
	}
}

func TestGuestListExcel(t *testing.T) {
	e := export.NewExporter()

	data, filename, mime, err := e.GuestListExcel("Housewarming", []export.GuestRow{
		{Name: "Nina Patel", Status: "attending", Role: "guest", PartySize: 2},
	})
	if err != nil {
		t.Fatalf("xlsx export: %v", err)
	}
	if filename != "guest_list.xlsx" {
		t.Fatalf("filename = %q", filename)
	}
	if mime != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("mime = %q", mime)
	}
	// XLSX is a zip container.
	if len(data) < 4 || data[0] != 'P' || data[1] != 'K' {
		t.Fatal("output is not a zip/xlsx payload")
	}
}

func TestBudgetPDFHeader(t *testing.T) {
	e := export.NewExporter()

	data, filename, mime, err := e.BudgetPDF("Housewarming", budgetSummary())
	if err != nil {
		t.Fatalf("pdf export: %v", err)
	}
	if filename != "budget_report.pdf" || mime != "application/pdf" {
		t.Fatalf("filename=%q mime=%q", filename, mime)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("output is not a PDF payload")
	}
}

func budgetSummary() *budget.Summary {
	return &budget.Summary{
		TotalBudget:    3000,
		TotalAllocated: 3000,
		TotalSpent:     1930,
		Remaining:      1070,
		PercentSpent:   64.33,
		Categories: []budget.CategoryView{
			{BudgetCategory: budget.BudgetCategory{Name: "Venue", Allocated: 800}, Spent: 800, PercentSpent: 100},
			{BudgetCategory: budget.BudgetCategory{Name: "Food & Drinks", Allocated: 1200}, Spent: 450, PercentSpent: 37.5},
		},
		Splits: []budget.SplitView{
			{PaymentSplit: budget.PaymentSplit{Name: "Sam", ShareAmount: 300, PaidAmount: 120}, Balance: 180},
		},
	}
}
