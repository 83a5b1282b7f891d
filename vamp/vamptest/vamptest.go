// Package vamptest provides in-memory vamp.Plugin implementations for
// exercising host code without any native plugin: a pass-through, a
// zero-output plugin, a constant emitter, an init-rejecting plugin and a
// panicking one.
package vamptest

import (
	"github.com/kelben/vamphost/realtime"
	"github.com/kelben/vamphost/vamp"
)

// Base is a configurable vamp.Plugin. Fill in the metadata fields and
// hooks, or use one of the constructors below. Call counters let tests
// assert whether the host actually reached the plugin.
type Base struct {
	Ident       string
	Title       string
	Desc        string
	MakerName   string
	CopyrightOf string
	APIVer      int
	PlugVer     int
	Domain      vamp.InputDomain

	Params []vamp.ParameterDescriptor
	Outs   []vamp.OutputDescriptor

	PrefBlock int
	PrefStep  int
	MinCh     int
	MaxCh     int

	// AcceptInit judges initialise arguments; nil accepts everything.
	AcceptInit func(channels, stepSize, blockSize int) bool
	// OnProcess produces the feature set for one block; nil emits none.
	OnProcess func(buffers [][]float32, at realtime.RealTime) vamp.FeatureSet
	// OnRemaining produces the drain result; nil emits none.
	OnRemaining func() vamp.FeatureSet

	// Recorded state.
	ParamValues  map[string]float32
	Channels     int
	StepSize     int
	BlockSize    int
	Initialised  bool
	ResetCount   int
	ProcessCount int
	DisposeCount int
}

var _ vamp.Plugin = (*Base)(nil)

func (b *Base) APIVersion() int    { return b.APIVer }
func (b *Base) PluginVersion() int { return b.PlugVer }
func (b *Base) Identifier() string { return b.Ident }
func (b *Base) Name() string       { return b.Title }
func (b *Base) Description() string {
	return b.Desc
}
func (b *Base) Maker() string     { return b.MakerName }
func (b *Base) Copyright() string { return b.CopyrightOf }

func (b *Base) InputDomain() vamp.InputDomain { return b.Domain }
func (b *Base) PreferredBlockSize() int       { return b.PrefBlock }
func (b *Base) PreferredStepSize() int        { return b.PrefStep }

func (b *Base) MinChannelCount() int {
	if b.MinCh <= 0 {
		return 1
	}
	return b.MinCh
}

func (b *Base) MaxChannelCount() int {
	if b.MaxCh <= 0 {
		return 1
	}
	return b.MaxCh
}

func (b *Base) ParameterDescriptors() []vamp.ParameterDescriptor { return b.Params }
func (b *Base) OutputDescriptors() []vamp.OutputDescriptor      { return b.Outs }

func (b *Base) Parameter(identifier string) float32 {
	if v, ok := b.ParamValues[identifier]; ok {
		return v
	}
	for _, pd := range b.Params {
		if pd.Identifier == identifier {
			return pd.DefaultValue
		}
	}
	return 0
}

func (b *Base) SetParameter(identifier string, value float32) {
	if b.ParamValues == nil {
		b.ParamValues = make(map[string]float32)
	}
	b.ParamValues[identifier] = value
}

func (b *Base) Initialise(channels, stepSize, blockSize int) bool {
	if b.AcceptInit != nil && !b.AcceptInit(channels, stepSize, blockSize) {
		return false
	}
	b.Channels = channels
	b.StepSize = stepSize
	b.BlockSize = blockSize
	b.Initialised = true
	return true
}

func (b *Base) Reset() { b.ResetCount++ }

func (b *Base) Process(buffers [][]float32, at realtime.RealTime) vamp.FeatureSet {
	b.ProcessCount++
	if b.OnProcess == nil {
		return vamp.FeatureSet{}
	}
	return b.OnProcess(buffers, at)
}

func (b *Base) RemainingFeatures() vamp.FeatureSet {
	if b.OnRemaining == nil {
		return vamp.FeatureSet{}
	}
	return b.OnRemaining()
}

func (b *Base) Dispose() { b.DisposeCount++ }

// NewZeroOutput returns a plugin with a single output that never emits a
// feature.
func NewZeroOutput() *Base {
	return &Base{
		Ident:     "zero-output",
		Title:     "Zero Output",
		MakerName: "vamptest",
		APIVer:    2,
		PlugVer:   1,
		Outs: []vamp.OutputDescriptor{{
			Identifier: "nothing",
			Name:       "Nothing",
			BinCount:   1,
			SampleType: vamp.OneSamplePerStep,
		}},
	}
}

// NewPassThrough returns a plugin with one output of the given bin count
// that echoes the first binCount samples of channel zero as an unlabelled,
// untimestamped feature on output 0, once per block.
func NewPassThrough(binCount int) *Base {
	b := &Base{
		Ident:     "passthrough",
		Title:     "Pass Through",
		MakerName: "vamptest",
		APIVer:    2,
		PlugVer:   1,
		Outs: []vamp.OutputDescriptor{{
			Identifier: "samples",
			Name:       "Samples",
			BinCount:   binCount,
			SampleType: vamp.OneSamplePerStep,
		}},
	}
	b.OnProcess = func(buffers [][]float32, _ realtime.RealTime) vamp.FeatureSet {
		n := binCount
		if len(buffers) == 0 {
			return vamp.FeatureSet{}
		}
		if n > len(buffers[0]) {
			n = len(buffers[0])
		}
		values := make([]float32, n)
		copy(values, buffers[0][:n])
		return vamp.FeatureSet{0: {{Values: values}}}
	}
	return b
}

// NewConstant returns a plugin that emits one single-valued feature per
// block, stamped with the block timestamp, and a final labelled feature
// with a duration from RemainingFeatures.
func NewConstant(value float32) *Base {
	b := &Base{
		Ident:     "constant",
		Title:     "Constant",
		MakerName: "vamptest",
		APIVer:    2,
		PlugVer:   1,
		Outs: []vamp.OutputDescriptor{{
			Identifier: "value",
			Name:       "Value",
			BinCount:   1,
			SampleType: vamp.VariableSampleRate,
		}},
	}
	b.OnProcess = func(_ [][]float32, at realtime.RealTime) vamp.FeatureSet {
		return vamp.FeatureSet{0: {{
			HasTimestamp: true,
			Timestamp:    at,
			Values:       []float32{value},
		}}}
	}
	b.OnRemaining = func() vamp.FeatureSet {
		return vamp.FeatureSet{0: {{
			HasTimestamp: true,
			HasDuration:  true,
			Duration:     realtime.New(1, 0),
			Label:        "end",
			Values:       []float32{value},
		}}}
	}
	return b
}

// NewRejecting returns a plugin whose Initialise applies the given
// acceptance predicate.
func NewRejecting(accept func(channels, stepSize, blockSize int) bool) *Base {
	b := NewZeroOutput()
	b.Ident = "rejecting"
	b.Title = "Rejecting"
	b.AcceptInit = accept
	return b
}

// NewPanicking returns a plugin that panics inside Process and
// RemainingFeatures, for abort-surface tests.
func NewPanicking() *Base {
	b := NewZeroOutput()
	b.Ident = "panicking"
	b.Title = "Panicking"
	b.OnProcess = func(_ [][]float32, _ realtime.RealTime) vamp.FeatureSet {
		panic("plugin blew up in process")
	}
	b.OnRemaining = func() vamp.FeatureSet {
		panic("plugin blew up in remaining features")
	}
	return b
}
