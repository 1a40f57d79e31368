//go:build !linux

package input

import (
	"errors"

	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/constants"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal/config"
)

// ErrUnsupported is returned by OpenEvdev outside Linux.
var ErrUnsupported = errors.New("evdev input is only available on linux")

// EvdevSource is unavailable on this platform.
type EvdevSource struct{}

func OpenEvdev(config.Input) (*EvdevSource, error) {
	return nil, ErrUnsupported
}

func (s *EvdevSource) Events() <-chan constants.Event {
	return nil
}

func (s *EvdevSource) Close() error {
	return nil
}
