// Package vamphost adapts native Vamp analysis plugins to a host-level
// object: structured descriptor access, a checked lifecycle, block
// processing and feature-set conversion.
//
// A Plugin handle owns exactly one native plugin instance for its
// lifetime. The handle is not reentrant; drive it from one goroutine.
// Distinct handles are independent as far as the adapter is concerned.
//
// Typical host sequence: obtain a handle from a loader (see the host
// package), read Info/Parameters, set parameters, Initialise, feed blocks
// through Process, drain with RemainingFeatures, then Unload.
package vamphost

import (
	"fmt"

	"github.com/kelben/vamphost/realtime"
	"github.com/kelben/vamphost/vamp"
)

// State is the handle lifecycle state.
type State int

const (
	// Created: constructed, not yet initialised. Descriptors and
	// parameters are accessible; processing is not.
	Created State = iota
	// Initialised: ready for Process and Reset.
	Initialised
	// Finalised: RemainingFeatures has been drained; only descriptor and
	// parameter access remain until Unload.
	Finalised
	// Unloaded: the native instance has been released. Every operation
	// except a repeated Unload reports ErrHandleInvalid.
	Unloaded
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Initialised:
		return "initialised"
	case Finalised:
		return "finalised"
	case Unloaded:
		return "unloaded"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Plugin is the host-visible handle around one native plugin instance.
type Plugin struct {
	p     vamp.Plugin
	state State

	// Locked in by a successful Initialise, immutable until Unload.
	channels  int
	stepSize  int
	blockSize int

	// Snapshots taken at construction; never mutated afterwards.
	inputDomain vamp.InputDomain
	info        map[string]any
	parameters  []map[string]any
}

// New wraps a freshly instantiated native plugin in a handle, taking
// ownership. The identity and parameter descriptors are snapshotted here;
// output descriptors are deliberately not (they may depend on
// initialisation arguments).
func New(p vamp.Plugin) (h *Plugin, err error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil plugin", ErrHandleInvalid)
	}
	defer func() {
		// No partially constructed handle escapes an aborting plugin.
		if r := recover(); r != nil {
			h, err = nil, fmt.Errorf("%w: %v", ErrPluginAborted, r)
		}
	}()

	h = &Plugin{
		p:           p,
		state:       Created,
		inputDomain: p.InputDomain(),
	}

	h.info = map[string]any{
		"apiVersion":    p.APIVersion(),
		"pluginVersion": p.PluginVersion(),
		"identifier":    p.Identifier(),
		"name":          p.Name(),
		"description":   p.Description(),
		"maker":         p.Maker(),
		"copyright":     p.Copyright(),
	}

	descriptors := p.ParameterDescriptors()
	h.parameters = make([]map[string]any, len(descriptors))
	for i, pd := range descriptors {
		param := map[string]any{
			"identifier":   pd.Identifier,
			"name":         pd.Name,
			"description":  pd.Description,
			"unit":         pd.Unit,
			"minValue":     pd.MinValue,
			"maxValue":     pd.MaxValue,
			"defaultValue": pd.DefaultValue,
			"isQuantized":  pd.IsQuantized,
		}
		if pd.IsQuantized {
			param["quantizeStep"] = pd.QuantizeStep
			if len(pd.ValueNames) > 0 {
				param["valueNames"] = StringList(pd.ValueNames)
			}
		}
		h.parameters[i] = param
	}

	return h, nil
}

// recoverAbort converts a plugin panic into ErrPluginAborted. Used around
// every call into the native instance so an aborting plugin never takes
// the host down or leaks a partially built result.
func recoverAbort(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", ErrPluginAborted, r)
	}
}

// valid reports ErrHandleInvalid once the handle has been unloaded.
func (h *Plugin) valid() error {
	if h.p == nil {
		return ErrHandleInvalid
	}
	return nil
}

// State returns the current lifecycle state.
func (h *Plugin) State() State { return h.state }

// Info returns the identity snapshot: apiVersion and pluginVersion (int),
// identifier, name, description, maker and copyright (string). The map is
// shared and must be treated as read-only.
func (h *Plugin) Info() map[string]any { return h.info }

// InputDomain reports whether the plugin wants time-domain or
// frequency-domain input. Fixed for the handle's lifetime.
func (h *Plugin) InputDomain() vamp.InputDomain { return h.inputDomain }

// Parameters returns the ordered parameter descriptor snapshot. Each map
// carries identifier, name, description, unit, minValue, maxValue,
// defaultValue and isQuantized; quantizeStep only when quantized, and
// valueNames only when quantized and non-empty. Shared, read-only.
func (h *Plugin) Parameters() []map[string]any { return h.parameters }

// Channels returns the channel count locked in by Initialise. Zero before
// initialisation.
func (h *Plugin) Channels() int { return h.channels }

// StepSize returns the step size locked in by Initialise.
func (h *Plugin) StepSize() int { return h.stepSize }

// BlockSize returns the block size locked in by Initialise.
func (h *Plugin) BlockSize() int { return h.blockSize }

// Outputs queries the plugin's output descriptors and returns them in
// host form. The list is computed on every call: some plugins only settle
// their output metadata once they know the initialise arguments, so the
// handle never caches it. Keys follow the same absence rules as the
// native descriptors: the extents and quantization keys appear only when
// binCount is positive, quantizeStep only when isQuantized.
func (h *Plugin) Outputs() (outputs []map[string]any, err error) {
	if err := h.valid(); err != nil {
		return nil, err
	}
	defer recoverAbort(&err)

	descriptors := h.p.OutputDescriptors()
	outputs = make([]map[string]any, len(descriptors))
	for i, od := range descriptors {
		out := map[string]any{
			"identifier":  od.Identifier,
			"name":        od.Name,
			"description": od.Description,
			"binCount":    od.BinCount,
			"sampleType":  int(od.SampleType),
			"sampleRate":  od.SampleRate,
			"hasDuration": od.HasDuration,
		}
		if od.BinCount > 0 {
			out["hasKnownExtents"] = od.HasKnownExtents
			if od.HasKnownExtents {
				out["minValue"] = od.MinValue
				out["maxValue"] = od.MaxValue
			}
			out["isQuantized"] = od.IsQuantized
			if od.IsQuantized {
				out["quantizeStep"] = od.QuantizeStep
			}
		}
		outputs[i] = out
	}
	return outputs, nil
}

// Initialise prepares the plugin for processing with the given channel
// count, step size and block size. Legal only in Created. Bounds are the
// plugin's to judge: a rejection surfaces as ErrInitFailed and leaves the
// handle in Created, safe to retry with different arguments. On success
// the three values are locked in until Unload.
func (h *Plugin) Initialise(channels, stepSize, blockSize int) (err error) {
	if err := h.valid(); err != nil {
		return err
	}
	if h.state != Created {
		return fmt.Errorf("%w: initialise in state %s", ErrWrongState, h.state)
	}
	defer recoverAbort(&err)

	if !h.p.Initialise(channels, stepSize, blockSize) {
		return fmt.Errorf("%w: channels=%d stepSize=%d blockSize=%d",
			ErrInitFailed, channels, stepSize, blockSize)
	}

	h.channels = channels
	h.stepSize = stepSize
	h.blockSize = blockSize
	h.state = Initialised
	return nil
}

// Reset returns the plugin to its freshly initialised state. Legal only
// in Initialised.
func (h *Plugin) Reset() (err error) {
	if err := h.valid(); err != nil {
		return err
	}
	if h.state != Initialised {
		return fmt.Errorf("%w: reset in state %s", ErrWrongState, h.state)
	}
	defer recoverAbort(&err)

	h.p.Reset()
	return nil
}

// Process feeds one block to the plugin and returns the features it
// emitted, keyed by output index. buffer must be an ordered sequence of
// per-channel 1-D numeric arrays — [][]float32, [][]float64 or []any of
// numeric slices — with exactly Channels entries of exactly BlockSize
// samples each. The channel data is copied into per-call marshalling
// buffers before the plugin sees it; nothing is retained between calls.
//
// Preconditions are checked in order: handle validity, state, buffer
// sequence-ness (ErrTypeMismatch), channel count and per-channel length
// (ErrShapeMismatch, naming the offending channel). The plugin is not
// invoked unless all of them pass.
func (h *Plugin) Process(buffer any, at realtime.RealTime) (FeatureSet, error) {
	if err := h.valid(); err != nil {
		return nil, err
	}
	if h.state != Initialised {
		return nil, fmt.Errorf("%w: process in state %s", ErrWrongState, h.state)
	}

	marshalled, err := h.marshalBuffer(buffer)
	if err != nil {
		return nil, err
	}

	return h.invoke(func() vamp.FeatureSet {
		return h.p.Process(marshalled, at)
	})
}

// marshalBuffer validates and copies the host buffer into the per-call
// channels × blockSize form handed to the plugin.
func (h *Plugin) marshalBuffer(buffer any) ([][]float32, error) {
	channels, ok := channelSequence(buffer)
	if !ok {
		return nil, fmt.Errorf("%w: process buffer must be a sequence of per-channel arrays, got %T",
			ErrTypeMismatch, buffer)
	}
	if len(channels) != h.channels {
		return nil, fmt.Errorf("%w: wrong number of channels: got %d, expected %d",
			ErrShapeMismatch, len(channels), h.channels)
	}

	marshalled := make([][]float32, len(channels))
	for c, raw := range channels {
		data, err := FloatVector(raw)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", c, err)
		}
		marshalled[c] = data
	}
	for c, data := range marshalled {
		if len(data) != h.blockSize {
			return nil, fmt.Errorf("%w: wrong number of samples on channel %d: expected %d, got %d",
				ErrShapeMismatch, c, h.blockSize, len(data))
		}
	}
	return marshalled, nil
}

// channelSequence flattens the accepted buffer forms into one channel
// slice per entry.
func channelSequence(buffer any) ([]any, bool) {
	switch b := buffer.(type) {
	case [][]float32:
		out := make([]any, len(b))
		for i, c := range b {
			out[i] = c
		}
		return out, true
	case [][]float64:
		out := make([]any, len(b))
		for i, c := range b {
			out[i] = c
		}
		return out, true
	case []any:
		return b, true
	default:
		return nil, false
	}
}

// invoke runs one feature-producing plugin call with abort protection and
// converts the result to host form.
func (h *Plugin) invoke(call func() vamp.FeatureSet) (fs FeatureSet, err error) {
	defer recoverAbort(&err)
	fs = convertFeatureSet(call())
	return fs, nil
}

// RemainingFeatures drains any features the plugin is still holding after
// the last block, then moves the handle to Finalised. Legal only in
// Initialised.
func (h *Plugin) RemainingFeatures() (FeatureSet, error) {
	if err := h.valid(); err != nil {
		return nil, err
	}
	if h.state != Initialised {
		return nil, fmt.Errorf("%w: getRemainingFeatures in state %s", ErrWrongState, h.state)
	}

	fs, err := h.invoke(h.p.RemainingFeatures)
	if err != nil {
		return nil, err
	}
	h.state = Finalised
	return fs, nil
}

// ParameterValue reads a named parameter from the plugin. Legal in any
// non-Unloaded state. Unknown identifiers are the plugin's business: the
// adapter forwards the call without checking against Parameters.
func (h *Plugin) ParameterValue(identifier string) (value float32, err error) {
	if err := h.valid(); err != nil {
		return 0, err
	}
	defer recoverAbort(&err)
	return h.p.Parameter(identifier), nil
}

// SetParameterValue writes a named parameter on the plugin. Legal in any
// non-Unloaded state; the usual host pattern is to set parameters before
// Initialise. Unknown identifiers are delegated to the plugin.
func (h *Plugin) SetParameterValue(identifier string, value float32) (err error) {
	if err := h.valid(); err != nil {
		return err
	}
	defer recoverAbort(&err)
	h.p.SetParameter(identifier, value)
	return nil
}

// PreferredBlockSize reports the plugin's preferred block size; zero
// means no preference.
func (h *Plugin) PreferredBlockSize() (int, error) {
	return h.capability(func() int { return h.p.PreferredBlockSize() })
}

// PreferredStepSize reports the plugin's preferred step size; zero means
// no preference.
func (h *Plugin) PreferredStepSize() (int, error) {
	return h.capability(func() int { return h.p.PreferredStepSize() })
}

// MinChannelCount reports the minimum channel count the plugin accepts.
func (h *Plugin) MinChannelCount() (int, error) {
	return h.capability(func() int { return h.p.MinChannelCount() })
}

// MaxChannelCount reports the maximum channel count the plugin accepts.
func (h *Plugin) MaxChannelCount() (int, error) {
	return h.capability(func() int { return h.p.MaxChannelCount() })
}

func (h *Plugin) capability(query func() int) (n int, err error) {
	if err := h.valid(); err != nil {
		return 0, err
	}
	defer recoverAbort(&err)
	return query(), nil
}

// Unload releases the native plugin instance. Legal in any state and
// idempotent: repeated calls are no-ops returning success. After Unload,
// every other operation reports ErrHandleInvalid.
func (h *Plugin) Unload() error {
	if h.p == nil {
		return nil
	}
	func() {
		// Unload always succeeds; a misbehaving Dispose must not stop
		// the handle from being torn down.
		defer func() { _ = recover() }()
		h.p.Dispose()
	}()
	h.p = nil
	h.state = Unloaded
	h.channels, h.stepSize, h.blockSize = 0, 0, 0
	return nil
}
