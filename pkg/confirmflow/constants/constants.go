// Package constants defines shared constants, types, and configuration values
// used throughout the confirmflow framework.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variable names read during initialization.
const (
	EnvironmentEnvVar = "ENVIRONMENT"
	LogLevelEnvVar    = "CONFIRMFLOW_LOG_LEVEL"
	InputDeviceEnvVar = "CONFIRMFLOW_INPUT_DEVICE"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

// Staging buffer capacities in bytes. One byte of each is reserved so the
// stored content always fits with a terminator on the display side.
const (
	TitleCapacity = 32
	TextCapacity  = 512
)

// Layout identifies the fixed rendering shape of a step.
// The set is closed; renderers switch on it exhaustively.
type Layout int

const (
	LayoutIconButton        Layout = iota // Icon above a single bold line, confirms on activation
	LayoutIconTwoLines                    // Icon above two regular lines
	LayoutPaging                          // Bold title above paginated text
	LayoutIconTwoLineButton               // Icon above two bold lines, confirms on activation
	LayoutTwoLines                        // Two regular lines, no icon
)

func (l Layout) GetName() string {
	switch l {
	case LayoutIconButton:
		return "IconButton"
	case LayoutIconTwoLines:
		return "IconTwoLines"
	case LayoutPaging:
		return "Paging"
	case LayoutIconTwoLineButton:
		return "IconTwoLineButton"
	case LayoutTwoLines:
		return "TwoLines"
	default:
		return "Unknown"
	}
}

// Valid reports whether l is one of the declared layouts.
func (l Layout) Valid() bool {
	return l >= LayoutIconButton && l <= LayoutTwoLines
}

// Event is a decoded user input delivered to the navigator.
type Event int

const (
	EventNone Event = iota
	EventPrevious
	EventNext
	EventActivate
)

func (e Event) GetName() string {
	switch e {
	case EventNone:
		return "None"
	case EventPrevious:
		return "Previous"
	case EventNext:
		return "Next"
	case EventActivate:
		return "Activate"
	default:
		return "Unknown"
	}
}

// Button is one of the two physical buttons on the device.
type Button int

const (
	ButtonUnassigned Button = iota
	ButtonLeft
	ButtonRight
)

func (b Button) GetName() string {
	switch b {
	case ButtonUnassigned:
		return "Unassigned"
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Default timing and geometry constants.
const (
	DefaultRepeatDelay    = 300 * time.Millisecond // Hold time before a held button starts repeating
	DefaultRepeatInterval = 50 * time.Millisecond  // Time between repeats while held
	DefaultDisplayWidth   = 128                    // Logical display width in pixels
	DefaultDisplayHeight  = 64                     // Logical display height in pixels
	DefaultPageColumns    = 16                     // Display cells per paginated text line
	DefaultPageRows       = 3                      // Text lines per page below the title
)
