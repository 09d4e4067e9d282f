package providers

import (
	"context"
	"errors"
)

// ErrVoiceUnavailable is returned when no voice capability is present or the
// device cannot start listening.
var ErrVoiceUnavailable = errors.New("voice capability unavailable")

// VoiceProvider abstracts the voice capture capability. A nil VoiceProvider
// means the capability is absent, which callers must detect before calling
// StartListening.
type VoiceProvider interface {
	// StartListening blocks until a transcript is recognized, recognition
	// fails, or ctx is cancelled.
	StartListening(ctx context.Context) (string, error)

	// StopListening aborts an in-progress capture.
	StopListening() error
}
