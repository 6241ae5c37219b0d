package domain

import (
	"fmt"
	"time"
)

// TimestampLayout matches the ISO-8601 form browsers produce for Date.toISOString.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Terms answers stored in the last sheet column.
const (
	TermsYes = "Yes"
	TermsNo  = "No"
)

// RowWidth is the number of cells in every appended lead row.
const RowWidth = 6

// Header is the first row of a lead sheet.
var Header = Row{"Timestamp", "Full Name", "Email", "Phone", "Role", "Terms Accepted"}

// Lead is the contact and preference data captured from a form submission.
type Lead struct {
	Timestamp     string
	FullName      string
	Email         string
	Phone         string
	Role          string
	TermsAccepted string
}

// Row is one line of the tabular store, ordered as Header.
type Row []string

// NormalizeLead fills every empty field with its default. Non-empty values pass through untouched.
func NormalizeLead(in Lead, now time.Time) Lead {
	out := in
	if out.Timestamp == "" {
		out.Timestamp = FormatTimestamp(now)
	}
	if out.TermsAccepted == "" {
		out.TermsAccepted = TermsNo
	}
	return out
}

// FormatTimestamp renders t in UTC with millisecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// TermsAnswer maps a checkbox state onto the stored answer.
func TermsAnswer(accepted bool) string {
	if accepted {
		return TermsYes
	}
	return TermsNo
}

// Row renders the lead in sheet column order.
func (l Lead) Row() Row {
	return Row{l.Timestamp, l.FullName, l.Email, l.Phone, l.Role, l.TermsAccepted}
}

// LeadFromRow is the inverse of Lead.Row.
func LeadFromRow(row Row) (Lead, error) {
	if len(row) != RowWidth {
		return Lead{}, fmt.Errorf("lead row has %d cells, want %d", len(row), RowWidth)
	}
	return Lead{
		Timestamp:     row[0],
		FullName:      row[1],
		Email:         row[2],
		Phone:         row[3],
		Role:          row[4],
		TermsAccepted: row[5],
	}, nil
}
