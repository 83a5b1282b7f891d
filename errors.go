package vamphost

import "errors"

// Error kinds surfaced by the adapter. Callers match them with errors.Is;
// the wrapped message carries the specifics (offending channel, lengths,
// parameter ids and so on).
var (
	// ErrHandleInvalid is returned for any operation other than Unload on
	// a handle whose plugin has already been released.
	ErrHandleInvalid = errors.New("invalid or already unloaded plugin handle")

	// ErrWrongState is returned when an operation is not permitted in the
	// handle's current lifecycle state.
	ErrWrongState = errors.New("operation not permitted in current plugin state")

	// ErrTypeMismatch is returned when an argument has the wrong type
	// class, e.g. a process buffer that is not a sequence of numeric
	// slices.
	ErrTypeMismatch = errors.New("argument type mismatch")

	// ErrShapeMismatch is returned when a process buffer has the wrong
	// channel count or block length.
	ErrShapeMismatch = errors.New("buffer shape mismatch")

	// ErrInitFailed is returned when the plugin rejects the initialise
	// arguments. The handle stays in Created and may be retried.
	ErrInitFailed = errors.New("plugin initialisation failed")

	// ErrPluginAborted is returned when the plugin panics or otherwise
	// aborts during a call. The handle state is left unchanged.
	ErrPluginAborted = errors.New("plugin aborted during call")

	// ErrParamUnknown is reserved for hosts that validate parameter ids
	// against the descriptor list. The adapter itself delegates unknown
	// ids to the plugin and never returns this.
	ErrParamUnknown = errors.New("unknown parameter identifier")
)
