package steg

import (
	"errors"

	"go.uber.org/zap"
)

type Option func(*Steg) error

// WithoutTrimSpace keeps leading and trailing white space of a message as part of the payload.
func WithoutTrimSpace() Option {
	return func(s *Steg) error {
		s.trimSpace = false
		return nil
	}
}

// WithLogger sets the logger used for debug output. A nil logger is rejected.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Steg) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		s.logger = logger
		return nil
	}
}
