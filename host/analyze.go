package host

import (
	"fmt"

	vamphost "github.com/kelben/vamphost"
	"github.com/kelben/vamphost/frames"
	"github.com/kelben/vamphost/realtime"
	"github.com/kelben/vamphost/transform"
	"github.com/kelben/vamphost/vamp"
)

// Analyze runs the transform's plugin over a whole columnar buffer and
// collects every feature the requested output emits, in emission order,
// including the remaining features drained after the last block.
//
// Step and block sizes come from the transform when set, otherwise from
// the plugin's preferences; a plugin with no block preference gets 1024,
// and a plugin with no step preference gets the block size for
// time-domain input or half of it for frequency-domain input. Parameters
// are applied before initialisation. If the transform names no output,
// the plugin's first output is collected.
//
// Each input file or buffer deserves its own call with its own handle;
// the handle is created, driven and unloaded entirely inside this
// function, so distinct Analyze calls may run on distinct goroutines.
func (r *Registry) Analyze(data [][]float32, sampleRate float64, t *transform.Transform) ([]vamphost.FeatureMap, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	handle, err := r.Load(t.Plugin, sampleRate)
	if err != nil {
		return nil, err
	}
	defer handle.Unload()

	for id, value := range t.Parameters {
		if err := handle.SetParameterValue(id, value); err != nil {
			return nil, fmt.Errorf("host: setting %q: %w", id, err)
		}
	}

	stepSize, blockSize, err := resolveSizes(handle, t)
	if err != nil {
		return nil, err
	}

	channels := len(data)
	if err := handle.Initialise(channels, stepSize, blockSize); err != nil {
		return nil, err
	}

	outputIndex, err := findOutput(handle, t.Output)
	if err != nil {
		return nil, err
	}

	cursor, err := frames.New(data, stepSize, blockSize)
	if err != nil {
		return nil, err
	}

	r.log.Debug().
		Str("key", t.Plugin).
		Int("stepSize", stepSize).
		Int("blockSize", blockSize).
		Int("blocks", cursor.Count()).
		Msg("analysis started")

	var collected []vamphost.FeatureMap
	for {
		block, startFrame, ok := cursor.Next()
		if !ok {
			break
		}
		fs, err := handle.Process(block, realtime.FromFrame(startFrame, sampleRate))
		if err != nil {
			return nil, err
		}
		collected = append(collected, fs[outputIndex]...)
	}

	fs, err := handle.RemainingFeatures()
	if err != nil {
		return nil, err
	}
	collected = append(collected, fs[outputIndex]...)

	return collected, nil
}

// resolveSizes applies transform overrides over plugin preferences.
func resolveSizes(handle *vamphost.Plugin, t *transform.Transform) (stepSize, blockSize int, err error) {
	blockSize = t.BlockSize
	if blockSize == 0 {
		blockSize, err = handle.PreferredBlockSize()
		if err != nil {
			return 0, 0, err
		}
	}
	if blockSize == 0 {
		blockSize = 1024
	}

	stepSize = t.StepSize
	if stepSize == 0 {
		stepSize, err = handle.PreferredStepSize()
		if err != nil {
			return 0, 0, err
		}
	}
	if stepSize == 0 {
		if handle.InputDomain() == vamp.FrequencyDomain {
			stepSize = blockSize / 2
		} else {
			stepSize = blockSize
		}
	}
	return stepSize, blockSize, nil
}

// findOutput resolves an output identifier to its index, post-Initialise
// so plugins that settle their outputs late are read correctly. An empty
// identifier selects the first output.
func findOutput(handle *vamphost.Plugin, identifier string) (int, error) {
	outputs, err := handle.Outputs()
	if err != nil {
		return 0, err
	}
	if len(outputs) == 0 {
		return 0, fmt.Errorf("host: plugin declares no outputs")
	}
	if identifier == "" {
		return 0, nil
	}
	for i, out := range outputs {
		if out["identifier"] == identifier {
			return i, nil
		}
	}
	return 0, fmt.Errorf("host: no output %q", identifier)
}
