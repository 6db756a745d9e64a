package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/bugemco/multimedia-request-hub/models"
)

// Period selects the reporting window relative to "now".
type Period string

const (
	PeriodAll     Period = "all"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// StatusAll passes every status through the status filter.
const StatusAll = "all"

func (p Period) Valid() bool {
	switch p {
	case PeriodAll, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// Interval returns the inclusive [start, end] window for p.
// Weeks start on Monday. PeriodAll spans the epoch through now.
func (p Period) Interval(now time.Time) (time.Time, time.Time) {
	switch p {
	case PeriodWeekly:
		// Monday 00:00 of the current week
		offset := (int(now.Weekday()) + 6) % 7
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
			AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	case PeriodMonthly:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	case PeriodYearly:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(1, 0, 0).Add(-time.Nanosecond)
	default:
		return time.Unix(0, 0), now
	}
}

// MatchesPeriod reports whether the request's date_requested falls
// inside the period window, inclusive of both bounds.
func MatchesPeriod(req models.Request, period Period, now time.Time) bool {
	start, end := period.Interval(now)
	t := req.DateRequested
	return !t.Before(start) && !t.After(end)
}

// MatchesStatus reports whether the request passes the status filter.
func MatchesStatus(req models.Request, status string) bool {
	if status == "" || status == StatusAll {
		return true
	}
	return string(req.Status) == status
}

// MatchesSearch does a case-insensitive substring match over task code,
// requester name, requester email, description, branch and the task
// type label. An empty or whitespace query matches everything; a
// missing email is skipped, never a match failure.
func MatchesSearch(req models.Request, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	fields := []string{
		req.TaskCode,
		req.Employee.FullName,
		req.TaskDescription,
		req.Employee.Branch,
		req.TaskType.Label(),
	}
	if req.Employee.Email != nil {
		fields = append(fields, *req.Employee.Email)
	}

	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// FilterRequests applies the period, status and search predicates. The
// three are independent, so application order does not affect the
// result set.
func FilterRequests(reqs []models.Request, period Period, status, query string, now time.Time) []models.Request {
	filtered := make([]models.Request, 0, len(reqs))
	for _, req := range reqs {
		if MatchesPeriod(req, period, now) && MatchesStatus(req, status) && MatchesSearch(req, query) {
			filtered = append(filtered, req)
		}
	}
	return filtered
}

// RequestStats holds the aggregation over a filtered set.
type RequestStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
}

// CountByStatus recomputes the stats by linear scan. No caching; the
// snapshot is replaced wholesale on every fetch.
func CountByStatus(reqs []models.Request) RequestStats {
	stats := RequestStats{Total: len(reqs)}
	for _, req := range reqs {
		switch req.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusInProgress:
			stats.InProgress++
		case models.StatusCompleted:
			stats.Completed++
		case models.StatusCancelled:
			stats.Cancelled++
		}
	}
	return stats
}

// ExportHeaders is the fixed report column order.
var ExportHeaders = []string{
	"Task ID",
	"Requester Name",
	"Employee ID",
	"Branch / Department",
	"Email",
	"Task Type",
	"Description",
	"Date Requested",
	"Deadline",
	"Status",
	"Notes",
}

const exportDateLayout = "2006-01-02"

// ExportRows flattens requests into report rows, one per request, in
// the ExportHeaders column order. Absent email and notes become blanks.
func ExportRows(reqs []models.Request) [][]string {
	rows := make([][]string, 0, len(reqs))
	for _, req := range reqs {
		email := ""
		if req.Employee.Email != nil {
			email = *req.Employee.Email
		}
		notes := ""
		if req.Notes != nil {
			notes = *req.Notes
		}
		rows = append(rows, []string{
			req.TaskCode,
			req.Employee.FullName,
			req.Employee.EmployeeCode,
			req.Employee.Branch,
			email,
			req.TaskType.Label(),
			req.TaskDescription,
			req.DateRequested.Format(exportDateLayout),
			req.TargetCompletionDate.Format(exportDateLayout),
			req.Status.Label(),
			notes,
		})
	}
	return rows
}

const reportSheetName = "Requests"

// BuildReportWorkbook writes the header row plus one row per request
// into a single-sheet workbook.
func BuildReportWorkbook(reqs []models.Request) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(reportSheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	writeRow := func(rowNum int, values []string) error {
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(reportSheetName, cell, v); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeRow(1, ExportHeaders); err != nil {
		return nil, err
	}
	for i, row := range ExportRows(reqs) {
		if err := writeRow(i+2, row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// ReportFileName names the download after the day it was generated.
func ReportFileName(now time.Time) string {
	return fmt.Sprintf("Multimedia Request Report Form-%s.xlsx", now.Format(exportDateLayout))
}
