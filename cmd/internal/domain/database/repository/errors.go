package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrDuplicateKey is returned when a write hits a unique index.
	ErrDuplicateKey = errors.New("repository: duplicate key")

	// ErrSlotTaken is returned when the (date, time) pair is already booked.
	ErrSlotTaken = errors.New("repository: slot already booked")
)

// translate maps driver errors onto the package sentinels. gorm's
// TranslateError covers sqlite and postgres; the message checks catch
// drivers or wrappers that slip through it.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Join(ErrDuplicateKey, err)
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"),
		strings.Contains(msg, "SQLSTATE 23505"),
		strings.Contains(msg, "duplicate key value"):
		return errors.Join(ErrDuplicateKey, err)
	}
	return err
}
