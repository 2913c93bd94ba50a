package services

import (
	"errors"

	"github.com/rotisserie/eris"

	"versusfut/repositories"
)

var (
	// ErrValidation covers missing or malformed input, rejected before any write
	ErrValidation = errors.New("validation failed")
	// ErrInsufficientPlayers is returned when the roster cannot fill two squads
	ErrInsufficientPlayers = errors.New("not enough players for two teams")
	// ErrStateTransition is returned for a lifecycle call that the current status does not allow
	ErrStateTransition = errors.New("invalid state transition")
	ErrNotFound        = repositories.ErrNotFound
	// ErrPersistence wraps any failure surfaced by the persistence gateway
	ErrPersistence = errors.New("persistence failure")
)

func validationf(format string, args ...interface{}) error {
	return eris.Wrapf(ErrValidation, format, args...)
}

func transitionf(format string, args ...interface{}) error {
	return eris.Wrapf(ErrStateTransition, format, args...)
}

// gatewayErr classifies an error coming back from a repository
func gatewayErr(err error, action string) error {
	if err == nil {
		return nil
	}
	if eris.Is(err, repositories.ErrNotFound) {
		return eris.Wrap(ErrNotFound, action)
	}
	if isDomainErr(err) {
		return err
	}
	return eris.Wrapf(ErrPersistence, "%s: %v", action, err)
}

func isDomainErr(err error) bool {
	for _, target := range []error{ErrValidation, ErrInsufficientPlayers, ErrStateTransition, ErrNotFound, ErrPersistence} {
		if eris.Is(err, target) {
			return true
		}
	}
	return false
}
