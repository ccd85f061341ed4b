package lock

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/opslock/weeklock/smartsheet"
)

type stub struct {
	sync.Mutex
	sheets  map[string]*smartsheet.Sheet
	fail    func(call int) bool
	batches [][]int64
}

func (s *stub) GetSheet(ctx context.Context, sheetID string) (*smartsheet.Sheet, error) {
	sheet, ok := s.sheets[sheetID]
	if !ok {
		return nil, fmt.Errorf("failed to fetch sheet %s: 404 Not Found", sheetID)
	}

	return sheet, nil
}

func (s *stub) LockRows(ctx context.Context, sheetID string, rows []int64) error {
	s.Lock()
	defer s.Unlock()

	call := len(s.batches)
	s.batches = append(s.batches, rows)

	if s.fail != nil && s.fail(call) {
		return fmt.Errorf("failed to lock rows in sheet %s: 503 Service Unavailable", sheetID)
	}

	return nil
}

func runner(api API) Runner {
	return Runner{
		API:       api,
		Column:    "Weekly Reference Logged Date",
		Cutoff:    time.Date(2024, time.January, 7, 23, 59, 59, 0, time.UTC),
		BatchSize: 25,
		Retries:   3,
		Workers:   2,
	}
}

func timesheet(name string, rows int) *smartsheet.Sheet {
	sheet := fixture()
	sheet.Name = name

	for i := 0; i < rows; i++ {
		sheet.Rows = append(sheet.Rows, row(int64(100+i), i+1, false, "2024-01-06"))
	}

	return sheet
}

func TestRunnerLocksInBatches(t *testing.T) {
	api := stub{
		sheets: map[string]*smartsheet.Sheet{
			"1964558450118532": timesheet("Timesheets", 30),
		},
	}

	r := runner(&api)
	records := r.Run(context.Background(), []string{"1964558450118532"})

	if len(api.batches) != 2 {
		t.Fatalf("Expected 2 lock mutations, got %v", len(api.batches))
	}

	if len(api.batches[0]) != 25 || len(api.batches[1]) != 5 {
		t.Errorf("Incorrect batch sizes: expected 25 + 5, got %v + %v", len(api.batches[0]), len(api.batches[1]))
	}

	if len(records) != 30 {
		t.Errorf("Expected 30 audit records, got %v", len(records))
	}
}

func TestRunnerRetriesAndAbandonsFailedBatches(t *testing.T) {
	api := stub{
		sheets: map[string]*smartsheet.Sheet{
			"1964558450118532": timesheet("Timesheets", 30),
		},
		fail: func(call int) bool { return call < 3 },
	}

	r := runner(&api)
	records := r.Run(context.Background(), []string{"1964558450118532"})

	// first batch fails all three attempts and is abandoned, second succeeds
	if len(api.batches) != 4 {
		t.Fatalf("Expected 4 lock mutations (3 retries + 1), got %v", len(api.batches))
	}

	if len(records) != 5 {
		t.Errorf("Expected 5 audit records from the surviving batch, got %v", len(records))
	}
}

func TestRunnerSkipsUnfetchableSheets(t *testing.T) {
	api := stub{
		sheets: map[string]*smartsheet.Sheet{
			"1964558450118532": timesheet("Timesheets", 3),
		},
	}

	r := runner(&api)
	records := r.Run(context.Background(), []string{"5905527830695812", "1964558450118532"})

	if len(records) != 3 {
		t.Errorf("Expected 3 audit records from the remaining sheet, got %v", len(records))
	}

	for _, record := range records {
		if record.SheetName != "Timesheets" {
			t.Errorf("Unexpected audit record for sheet '%s'", record.SheetName)
		}
	}
}

func TestRunnerSkipsSheetsWithoutTheColumn(t *testing.T) {
	payroll := timesheet("Payroll", 3)
	payroll.Columns = []smartsheet.Column{
		{ID: 7002, Title: "weekly reference logged date"},
	}

	api := stub{
		sheets: map[string]*smartsheet.Sheet{
			"1964558450118532": timesheet("Timesheets", 2),
			"5905527830695812": payroll,
		},
	}

	r := runner(&api)
	records := r.Run(context.Background(), []string{"1964558450118532", "5905527830695812"})

	if len(records) != 2 {
		t.Errorf("Expected 2 audit records, got %v", len(records))
	}
}

func TestRunnerDryRunLocksNothing(t *testing.T) {
	api := stub{
		sheets: map[string]*smartsheet.Sheet{
			"1964558450118532": timesheet("Timesheets", 30),
		},
	}

	r := runner(&api)
	r.DryRun = true

	records := r.Run(context.Background(), []string{"1964558450118532"})

	if len(api.batches) != 0 {
		t.Errorf("Expected no lock mutations on a dry run, got %v", len(api.batches))
	}

	if len(records) != 0 {
		t.Errorf("Expected no audit records on a dry run, got %v", len(records))
	}
}

func TestRunnerAuditRecords(t *testing.T) {
	sheet := fixture(
		row(101, 1, false, "2024-01-06"),
		row(102, 2, true, "2024-01-06"),
		row(103, 3, false, "01/07/24"),
	)

	api := stub{
		sheets: map[string]*smartsheet.Sheet{
			"1964558450118532": sheet,
		},
	}

	r := runner(&api)
	records := r.Run(context.Background(), []string{"1964558450118532"})

	if len(records) != 2 {
		t.Fatalf("Expected 2 audit records, got %v", len(records))
	}

	expected := []struct {
		id     int64
		number int
		date   string
	}{
		{101, 1, "2024-01-06"},
		{103, 3, "01/07/24"},
	}

	for i, e := range expected {
		record := records[i]
		if record.SheetName != "Timesheets" || record.RowID != e.id || record.RowNumber != e.number || record.Date != e.date {
			t.Errorf("Incorrect audit record\n   expected: %v\n   got:      %v", e, record)
		}
	}
}

func TestRunnerProcessesSheetsIndependently(t *testing.T) {
	api := stub{
		sheets: map[string]*smartsheet.Sheet{
			"1964558450118532": timesheet("Timesheets", 2),
			"5905527830695812": timesheet("Expenses", 3),
			"4126460034895748": timesheet("Payroll", 1),
		},
	}

	r := runner(&api)
	records := r.Run(context.Background(), []string{"1964558450118532", "5905527830695812", "4126460034895748"})

	counts := map[string]int{}
	for _, record := range records {
		counts[record.SheetName]++
	}

	expected := map[string]int{"Timesheets": 2, "Expenses": 3, "Payroll": 1}
	if !reflect.DeepEqual(counts, expected) {
		t.Errorf("Incorrect audit records\n   expected: %v\n   got:      %v", expected, counts)
	}
}
