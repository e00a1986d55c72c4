package handler

import "testing"

func TestParseStudentRow(t *testing.T) {
	s, ok := parseStudentRow([]string{"S0001", "Asha Rao", "Physics", "2", "PH24-010"})
	if !ok {
		t.Fatal("full row rejected")
	}
	if s.StudentNo != "S0001" || s.Subject != "Physics" || s.RollNo != "PH24-010" {
		t.Fatalf("bad parse: %+v", s)
	}

	// year and roll_no are optional; year defaults to "1"
	s, ok = parseStudentRow([]string{"S0002", "Ben Kim", "Math"})
	if !ok {
		t.Fatal("short row rejected")
	}
	if s.Year != "1" || s.RollNo != "" {
		t.Fatalf("defaults not applied: %+v", s)
	}

	for _, rec := range [][]string{
		{"", "No ID", "Math"},
		{"S0003", "", "Math"},
		{"S0004", "No Subject", ""},
		{},
	} {
		if _, ok := parseStudentRow(rec); ok {
			t.Fatalf("row %v should be skipped", rec)
		}
	}
}

func TestIsHeaderRow(t *testing.T) {
	if !isHeaderRow([]string{"student_no", "name", "subject"}) {
		t.Fatal("header not detected")
	}
	if !isHeaderRow([]string{"ID", "Name", "Subject"}) {
		t.Fatal("id header not detected")
	}
	if isHeaderRow([]string{"S0001", "Asha Rao", "Physics"}) {
		t.Fatal("data row mistaken for header")
	}
}
