// Package vamp defines the native plugin contract consumed by the host
// adapter: the Plugin interface and the descriptor, feature and enum types
// that mirror the Vamp plugin ABI.
//
// Model:
//   - A Plugin is one loaded analysis instance. It is exclusively owned by
//     whoever created it and is not safe for concurrent use.
//   - Static metadata (identity, parameters) never changes over the
//     instance lifetime. Output metadata may depend on initialisation
//     arguments, so hosts should re-query OutputDescriptors after
//     Initialise rather than caching early.
//   - Process is fed exactly Channels slices of exactly BlockSize samples;
//     enforcing that is the host's job, not the plugin's.
package vamp

import "github.com/kelben/vamphost/realtime"

// InputDomain says whether a plugin wants time-domain samples or
// frequency-domain bins in its process input.
type InputDomain int

const (
	TimeDomain InputDomain = iota
	FrequencyDomain
)

// String returns the conventional name for the domain.
func (d InputDomain) String() string {
	if d == FrequencyDomain {
		return "frequency"
	}
	return "time"
}

// SampleType describes how the features on one output are spaced in time.
// The numeric values are part of the ABI and must not be reordered.
type SampleType int

const (
	OneSamplePerStep   SampleType = 0
	FixedSampleRate    SampleType = 1
	VariableSampleRate SampleType = 2
)

// ParameterDescriptor is the static description of one plugin parameter.
type ParameterDescriptor struct {
	Identifier   string
	Name         string
	Description  string
	Unit         string
	MinValue     float32
	MaxValue     float32
	DefaultValue float32
	IsQuantized  bool
	QuantizeStep float32  // meaningful only when IsQuantized
	ValueNames   []string // optional value labels for quantized parameters
}

// OutputDescriptor is the static description of one plugin output.
type OutputDescriptor struct {
	Identifier      string
	Name            string
	Description     string
	Unit            string
	BinCount        int
	HasKnownExtents bool
	MinValue        float32
	MaxValue        float32
	IsQuantized     bool
	QuantizeStep    float32
	SampleType      SampleType
	SampleRate      float32
	HasDuration     bool
}

// Feature is one datum emitted on an output: an optional timestamp and
// duration, a label (possibly empty) and an optional vector of values.
type Feature struct {
	HasTimestamp bool
	Timestamp    realtime.RealTime
	HasDuration  bool
	Duration     realtime.RealTime
	Label        string
	Values       []float32
}

// FeatureList is the ordered features emitted on a single output.
type FeatureList []Feature

// FeatureSet maps output index to the features emitted there by one
// Process or RemainingFeatures call. Outputs that emitted nothing may be
// present with an empty list or absent entirely; hosts treat both alike.
type FeatureSet map[int]FeatureList

// Plugin is the native analysis plugin ABI.
//
// Lifecycle: construct (via a loader or factory), optionally set
// parameters, Initialise once, then Process repeatedly and drain with
// RemainingFeatures. Dispose releases any native resources; no method may
// be called afterwards.
type Plugin interface {
	// Identity.
	APIVersion() int
	PluginVersion() int
	Identifier() string
	Name() string
	Description() string
	Maker() string
	Copyright() string

	// Static capabilities. A zero preferred size means no preference.
	InputDomain() InputDomain
	PreferredBlockSize() int
	PreferredStepSize() int
	MinChannelCount() int
	MaxChannelCount() int

	// Descriptors. OutputDescriptors may legitimately differ before and
	// after Initialise.
	ParameterDescriptors() []ParameterDescriptor
	OutputDescriptors() []OutputDescriptor

	// Parameter access. Behaviour for unknown identifiers is
	// plugin-defined, matching the native ABI.
	Parameter(identifier string) float32
	SetParameter(identifier string, value float32)

	// Initialise prepares the instance for the given channel count, step
	// size and block size. It reports false on rejection, in which case
	// the instance stays un-initialised and may be retried.
	Initialise(channels, stepSize, blockSize int) bool

	// Reset returns the instance to its post-Initialise state.
	Reset()

	// Process consumes one block: buffers holds one slice per channel,
	// each of exactly the initialised block size. The buffers are only
	// valid for the duration of the call.
	Process(buffers [][]float32, at realtime.RealTime) FeatureSet

	// RemainingFeatures drains whatever the plugin still holds after the
	// last block.
	RemainingFeatures() FeatureSet

	// Dispose releases the instance. Idempotent.
	Dispose()
}
