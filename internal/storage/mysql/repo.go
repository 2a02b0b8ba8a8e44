package mysql

import (
	"context"
	"database/sql"

	"cleaning_booking/internal/domain"
)

// Column widths of submission_attempts, in characters.
const (
	userIDWidth    = 64
	categoryWidth  = 32
	packageWidth   = 32
	homeSizeWidth  = 16
	frequencyWidth = 16
	stateWidth     = 16
	kindWidth      = 16
	messageWidth   = 512
	bookingIDWidth = 64
)

// clipStr truncates s to n runes.
func clipStr(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n])
	}
	return s
}

// clip is clipStr for nullable columns.
func clip(p *string, n int) any {
	if p == nil {
		return nil
	}
	return clipStr(*p, n)
}

func strPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// Repo keeps one row per finished submission attempt.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) RecordAttempt(ctx context.Context, a domain.AttemptLog) error {
	_, err := r.db.ExecContext(ctx, insertAttemptSQL,
		a.ID,
		clip(a.UserID, userIDWidth),
		clipStr(string(a.Options.Category), categoryWidth),
		clipStr(string(a.Options.Package), packageWidth),
		clipStr(string(a.Options.HomeSize), homeSizeWidth),
		clipStr(string(a.Options.Frequency), frequencyWidth),
		a.TotalRooms,
		a.FinalPrice,
		clipStr(a.State, stateWidth),
		clip(a.ErrorKind, kindWidth),
		clip(a.Message, messageWidth),
		clip(a.BookingID, bookingIDWidth),
		a.CreatedAt,
	)
	return err
}

func (r *Repo) RecentAttempts(ctx context.Context, userID string, limit int) ([]domain.AttemptLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, recentAttemptsSQL, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AttemptLog
	for rows.Next() {
		var a domain.AttemptLog
		var (
			uid, kind, msg, bookingID sql.NullString
			category, pkg, size, freq string
		)
		if err := rows.Scan(
			&a.ID,
			&uid,
			&category, &pkg, &size, &freq,
			&a.TotalRooms,
			&a.FinalPrice,
			&a.State,
			&kind,
			&msg,
			&bookingID,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		a.Options = domain.ServiceOptions{
			Category:  domain.Category(category),
			Package:   domain.Package(pkg),
			HomeSize:  domain.HomeSize(size),
			Frequency: domain.Frequency(freq),
		}
		a.UserID = strPtr(uid)
		a.ErrorKind = strPtr(kind)
		a.Message = strPtr(msg)
		a.BookingID = strPtr(bookingID)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
