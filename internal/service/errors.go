package service

import (
	"errors"
	"time"

	"granja/pkg/apperror"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// notFound attaches a resource-specific message to a NotFound outcome.
func notFound(err error, msg string) error {
	if errors.Is(err, apperror.ErrNotFound) {
		return apperror.ErrNotFound.WithMessage(msg)
	}
	return err
}

// updated turns a repository update result into the caller-facing outcome:
// an unchanged row is a NoOp carrying msg.
func updated(changed bool, err error, msg string) error {
	if err != nil {
		return err
	}
	if !changed {
		return apperror.ErrNoOp.WithMessage(msg)
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, apperror.NewBadRequest("fecha inválida, formato esperado AAAA-MM-DD").WithInternal(err)
	}
	return t, nil
}
