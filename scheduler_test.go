package main

import (
	"testing"
	"time"
)

// TestNextReportRun_BeforeHour verifies that a time before the report hour
// schedules the run for the same day.
func TestNextReportRun_BeforeHour(t *testing.T) {
	now := time.Date(2026, 8, 30, 9, 15, 0, 0, time.UTC)
	next := nextReportRun(now, 21)

	want := time.Date(2026, 8, 30, 21, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("nextReportRun = %v, want %v", next, want)
	}
}

// TestNextReportRun_AfterHour verifies that a time past the report hour rolls
// over to the next day.
func TestNextReportRun_AfterHour(t *testing.T) {
	now := time.Date(2026, 8, 30, 22, 30, 0, 0, time.UTC)
	next := nextReportRun(now, 21)

	want := time.Date(2026, 8, 31, 21, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("nextReportRun = %v, want %v", next, want)
	}
}

// TestNextReportRun_ExactlyAtHour verifies that exactly hour:00 schedules the
// next day rather than firing immediately in a tight loop.
func TestNextReportRun_ExactlyAtHour(t *testing.T) {
	now := time.Date(2026, 8, 30, 21, 0, 0, 0, time.UTC)
	next := nextReportRun(now, 21)

	if !next.After(now) {
		t.Errorf("nextReportRun = %v, want strictly after %v", next, now)
	}
	if next.Day() != 31 {
		t.Errorf("nextReportRun day = %d, want 31", next.Day())
	}
}

// TestNextReportRun_KeepsLocation verifies the scheduled time stays in now's
// location.
func TestNextReportRun_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, loc)
	next := nextReportRun(now, 21)

	if next.Location() != loc {
		t.Errorf("nextReportRun location = %v, want %v", next.Location(), loc)
	}
	if next.Hour() != 21 {
		t.Errorf("nextReportRun hour = %d, want 21", next.Hour())
	}
}
