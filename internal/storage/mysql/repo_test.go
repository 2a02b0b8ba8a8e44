package mysql_test

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"cleaning_booking/internal/domain"
	mysqlrepo "cleaning_booking/internal/storage/mysql"
)

func pstr(s string) *string { return &s }

func TestRepo_RecordAttempt(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO submission_attempts")).
		WithArgs("a-1", "u-1", "Deep Cleaning", "Premium Package", "medium", "weekly",
			2, int64(33915), "failed", "server", "server down", nil, at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := mysqlrepo.New(db)
	err = repo.RecordAttempt(context.Background(), domain.AttemptLog{
		ID:     "a-1",
		UserID: pstr("u-1"),
		Options: domain.ServiceOptions{
			Category: domain.CategoryDeep, Package: domain.PackagePremium,
			HomeSize: domain.HomeMedium, Frequency: domain.FrequencyWeekly,
		},
		TotalRooms: 2,
		FinalPrice: 33915,
		State:      "failed",
		ErrorKind:  pstr("server"),
		Message:    pstr("server down"),
		CreatedAt:  at,
	})
	if err != nil {
		t.Fatalf("RecordAttempt: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRepo_RecordAttemptClipsToColumnWidths(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	long := strings.Repeat("é", 600)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO submission_attempts")).
		WithArgs("a-3", strings.Repeat("é", 64),
			strings.Repeat("é", 32), strings.Repeat("é", 32), strings.Repeat("é", 16), strings.Repeat("é", 16),
			0, int64(0), "rejected", "validation", strings.Repeat("é", 512), nil, at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = mysqlrepo.New(db).RecordAttempt(context.Background(), domain.AttemptLog{
		ID:     "a-3",
		UserID: pstr(long),
		Options: domain.ServiceOptions{
			Category: domain.Category(long), Package: domain.Package(long),
			HomeSize: domain.HomeSize(long), Frequency: domain.Frequency(long),
		},
		State:     "rejected",
		ErrorKind: pstr("validation"),
		Message:   pstr(long),
		CreatedAt: at,
	})
	if err != nil {
		t.Fatalf("RecordAttempt: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRepo_RecentAttempts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "category", "package", "home_size", "frequency",
		"total_rooms", "final_price", "state", "error_kind", "message", "booking_id", "created_at",
	}).
		AddRow("a-2", "u-1", "Standard Cleaning", "Standard Package", "small", "one-time", 2, 10400, "succeeded", nil, nil, "b1", at).
		AddRow("a-1", "u-1", "Standard Cleaning", "Standard Package", "small", "one-time", 0, 0, "rejected", "validation", "no rooms selected", nil, at.Add(-time.Minute))

	mock.ExpectQuery(regexp.QuoteMeta("FROM submission_attempts")).
		WithArgs("u-1", 50).
		WillReturnRows(rows)

	got, err := mysqlrepo.New(db).RecentAttempts(context.Background(), "u-1", 0)
	if err != nil {
		t.Fatalf("RecentAttempts: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].BookingID == nil || *got[0].BookingID != "b1" || got[0].ErrorKind != nil {
		t.Fatalf("unexpected first row: %+v", got[0])
	}
	if got[1].Message == nil || *got[1].Message != "no rooms selected" || got[1].Options.Category != domain.CategoryStandard {
		t.Fatalf("unexpected second row: %+v", got[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
