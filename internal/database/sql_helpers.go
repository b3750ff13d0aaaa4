package database

import (
	"database/sql"
	"time"
)

const dateLayout = "2006-01-02"

// nullableString converts a pointer to sql.NullString.
// Nil and empty strings are treated as NULL.
func nullableString(v *string) sql.NullString {
	if v == nil || *v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

// nullableDate stores a calendar day as TEXT, or NULL.
func nullableDate(v *time.Time) sql.NullString {
	if v == nil || v.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: v.Format(dateLayout), Valid: true}
}

// stringPtr turns a scanned NullString back into an optional field.
func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

// datePtr parses a scanned date column. Unparseable values read as NULL.
func datePtr(v sql.NullString) *time.Time {
	if !v.Valid || v.String == "" {
		return nil
	}
	t, err := time.ParseInLocation(dateLayout, v.String, time.Local)
	if err != nil {
		return nil
	}
	return &t
}

func rollbackWithLog(tx *sql.Tx, err error) error {
	if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
		dbLog.WithError(rbErr).Warn("rollback failed")
	}
	return err
}
