// Package example provides two small pure-Go analysis plugins, modelled
// on the classic Vamp example plugins: a zero-crossing counter and a
// block power meter. They give the CLI something real to run and the
// integration tests realistic descriptor metadata.
package example

import (
	"math"

	"github.com/kelben/vamphost/host"
	"github.com/kelben/vamphost/realtime"
	"github.com/kelben/vamphost/vamp"
)

// Register adds the example plugins to a registry under the keys
// "example:zerocrossing" and "example:power".
func Register(r *host.Registry) error {
	if err := r.Register("example:zerocrossing", func(rate float64) vamp.Plugin {
		return NewZeroCrossing(rate)
	}); err != nil {
		return err
	}
	return r.Register("example:power", func(rate float64) vamp.Plugin {
		return NewPower(rate)
	})
}

// ZeroCrossing counts sign changes in time-domain input. Output 0 carries
// one count per block; output 1 carries a timestamped feature per
// individual crossing.
type ZeroCrossing struct {
	sampleRate float64
	blockSize  int
	previous   float32
}

var _ vamp.Plugin = (*ZeroCrossing)(nil)

// NewZeroCrossing returns an uninitialised instance for the given input
// sample rate.
func NewZeroCrossing(sampleRate float64) *ZeroCrossing {
	return &ZeroCrossing{sampleRate: sampleRate}
}

func (z *ZeroCrossing) APIVersion() int     { return 2 }
func (z *ZeroCrossing) PluginVersion() int  { return 2 }
func (z *ZeroCrossing) Identifier() string  { return "zerocrossing" }
func (z *ZeroCrossing) Name() string        { return "Zero Crossings" }
func (z *ZeroCrossing) Description() string { return "Detect and count zero crossing points" }
func (z *ZeroCrossing) Maker() string       { return "vamphost examples" }
func (z *ZeroCrossing) Copyright() string   { return "Freely redistributable (BSD licence)" }

func (z *ZeroCrossing) InputDomain() vamp.InputDomain { return vamp.TimeDomain }
func (z *ZeroCrossing) PreferredBlockSize() int       { return 0 }
func (z *ZeroCrossing) PreferredStepSize() int        { return 0 }
func (z *ZeroCrossing) MinChannelCount() int          { return 1 }
func (z *ZeroCrossing) MaxChannelCount() int          { return 1 }

func (z *ZeroCrossing) ParameterDescriptors() []vamp.ParameterDescriptor { return nil }

func (z *ZeroCrossing) OutputDescriptors() []vamp.OutputDescriptor {
	return []vamp.OutputDescriptor{
		{
			Identifier:   "counts",
			Name:         "Zero Crossing Counts",
			Description:  "The number of zero crossing points per processing block",
			Unit:         "crossings",
			BinCount:     1,
			IsQuantized:  true,
			QuantizeStep: 1,
			SampleType:   vamp.OneSamplePerStep,
		},
		{
			Identifier:  "zerocrossings",
			Name:        "Zero Crossings",
			Description: "The locations of zero crossing points",
			BinCount:    0,
			SampleType:  vamp.VariableSampleRate,
			SampleRate:  float32(z.sampleRate),
		},
	}
}

func (z *ZeroCrossing) Parameter(string) float32     { return 0 }
func (z *ZeroCrossing) SetParameter(string, float32) {}

func (z *ZeroCrossing) Initialise(channels, stepSize, blockSize int) bool {
	if channels < z.MinChannelCount() || channels > z.MaxChannelCount() {
		return false
	}
	if stepSize < 1 || blockSize < 1 {
		return false
	}
	z.blockSize = blockSize
	z.previous = 0
	return true
}

func (z *ZeroCrossing) Reset() { z.previous = 0 }

func (z *ZeroCrossing) Process(buffers [][]float32, at realtime.RealTime) vamp.FeatureSet {
	count := 0
	var crossings vamp.FeatureList

	previous := z.previous
	for i, sample := range buffers[0] {
		crossing := (sample <= 0 && previous > 0) || (sample > 0 && previous <= 0)
		if crossing {
			count++
			crossings = append(crossings, vamp.Feature{
				HasTimestamp: true,
				Timestamp:    at.Add(realtime.FromFrame(int64(i), z.sampleRate)),
			})
		}
		previous = sample
	}
	z.previous = previous

	fs := vamp.FeatureSet{
		0: {{Values: []float32{float32(count)}}},
	}
	if len(crossings) > 0 {
		fs[1] = crossings
	}
	return fs
}

func (z *ZeroCrossing) RemainingFeatures() vamp.FeatureSet { return vamp.FeatureSet{} }

func (z *ZeroCrossing) Dispose() {}

// Power reports the mean power of each block, linearly or in dB
// depending on the quantized "scale" parameter.
type Power struct {
	sampleRate float64
	scale      float32
}

var _ vamp.Plugin = (*Power)(nil)

// NewPower returns an uninitialised instance for the given sample rate.
func NewPower(sampleRate float64) *Power {
	return &Power{sampleRate: sampleRate}
}

func (p *Power) APIVersion() int     { return 2 }
func (p *Power) PluginVersion() int  { return 1 }
func (p *Power) Identifier() string  { return "power" }
func (p *Power) Name() string        { return "Block Power" }
func (p *Power) Description() string { return "Mean power per processing block" }
func (p *Power) Maker() string       { return "vamphost examples" }
func (p *Power) Copyright() string   { return "Freely redistributable (BSD licence)" }

func (p *Power) InputDomain() vamp.InputDomain { return vamp.TimeDomain }
func (p *Power) PreferredBlockSize() int       { return 1024 }
func (p *Power) PreferredStepSize() int        { return 0 }
func (p *Power) MinChannelCount() int          { return 1 }
func (p *Power) MaxChannelCount() int          { return 1 }

func (p *Power) ParameterDescriptors() []vamp.ParameterDescriptor {
	return []vamp.ParameterDescriptor{{
		Identifier:   "scale",
		Name:         "Scale",
		Description:  "Report power linearly or in decibels",
		MinValue:     0,
		MaxValue:     1,
		DefaultValue: 0,
		IsQuantized:  true,
		QuantizeStep: 1,
		ValueNames:   []string{"linear", "dB"},
	}}
}

func (p *Power) OutputDescriptors() []vamp.OutputDescriptor {
	unit := ""
	if p.scale >= 0.5 {
		unit = "dB"
	}
	return []vamp.OutputDescriptor{{
		Identifier:  "power",
		Name:        "Power",
		Description: "Mean power of the block",
		Unit:        unit,
		BinCount:    1,
		SampleType:  vamp.OneSamplePerStep,
	}}
}

func (p *Power) Parameter(identifier string) float32 {
	if identifier == "scale" {
		return p.scale
	}
	return 0
}

func (p *Power) SetParameter(identifier string, value float32) {
	if identifier == "scale" {
		p.scale = value
	}
}

func (p *Power) Initialise(channels, stepSize, blockSize int) bool {
	return channels == 1 && stepSize >= 1 && blockSize >= 1
}

func (p *Power) Reset() {}

func (p *Power) Process(buffers [][]float32, _ realtime.RealTime) vamp.FeatureSet {
	var sum float64
	for _, sample := range buffers[0] {
		sum += float64(sample) * float64(sample)
	}
	power := sum / float64(len(buffers[0]))
	if p.scale >= 0.5 {
		if power < 1e-12 {
			power = 1e-12
		}
		power = 10 * math.Log10(power)
	}
	return vamp.FeatureSet{0: {{Values: []float32{float32(power)}}}}
}

func (p *Power) RemainingFeatures() vamp.FeatureSet { return vamp.FeatureSet{} }

func (p *Power) Dispose() {}
