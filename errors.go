package goldbook

import "errors"

var (
	// ErrNoPrice is returned when no price source produced a positive 24 karat gram price.
	ErrNoPrice = errors.New("no market price available")
	// ErrNoData is returned when exporting an empty set of rows.
	ErrNoData = errors.New("no data to export")
	// ErrNotFound is returned when an id does not match any record.
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalid is returned when a record fails validation.
	ErrInvalid = errors.New("invalid")
	// ErrNoBackup is returned when the cloud folder holds no backup file.
	ErrNoBackup = errors.New("no cloud backup found")
)
