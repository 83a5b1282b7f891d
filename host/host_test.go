package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vamphost "github.com/kelben/vamphost"
	"github.com/kelben/vamphost/vamp"
	"github.com/kelben/vamphost/vamp/vamptest"
)

func countingFactory(calls *int) Factory {
	return func(sampleRate float64) vamp.Plugin {
		*calls++
		return vamptest.NewZeroOutput()
	}
}

func TestRegisterValidation(t *testing.T) {
	r := NewRegistry()
	assert.Error(t, r.Register("", func(float64) vamp.Plugin { return nil }))
	assert.Error(t, r.Register("k", nil))

	require.NoError(t, r.Register("k", func(float64) vamp.Plugin { return vamptest.NewZeroOutput() }))
	assert.Error(t, r.Register("k", func(float64) vamp.Plugin { return vamptest.NewZeroOutput() }),
		"duplicate keys must be rejected")
}

func TestKeysSorted(t *testing.T) {
	r := NewRegistry()
	for _, key := range []string{"c:z", "a:y", "b:x"} {
		require.NoError(t, r.Register(key, func(float64) vamp.Plugin { return vamptest.NewZeroOutput() }))
	}
	assert.Equal(t, []string{"a:y", "b:x", "c:z"}, r.Keys())
}

func TestLoadReturnsCreatedHandle(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("t:zero", func(float64) vamp.Plugin { return vamptest.NewZeroOutput() }))

	handle, err := r.Load("t:zero", 48000)
	require.NoError(t, err)
	defer handle.Unload()

	assert.Equal(t, vamphost.Created, handle.State())
	assert.Equal(t, "zero-output", handle.Info()["identifier"])
}

func TestLoadUnknownKey(t *testing.T) {
	r := NewRegistry()
	_, err := r.Load("nope", 44100)
	assert.ErrorIs(t, err, ErrUnknownPlugin)
}

func TestLoadNilInstance(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("t:nil", func(float64) vamp.Plugin { return nil }))
	_, err := r.Load("t:nil", 44100)
	assert.Error(t, err)
}

func TestInfoSnapshotCached(t *testing.T) {
	calls := 0
	r := NewRegistry()
	require.NoError(t, r.Register("t:zero", countingFactory(&calls)))

	first, err := r.Info("t:zero", 44100)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "zero-output", first.Info["identifier"])
	assert.Equal(t, "time", first.InputDomain)
	require.Len(t, first.Outputs, 1)
	assert.Equal(t, "nothing", first.Outputs[0]["identifier"])

	second, err := r.Info("t:zero", 44100)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "repeat query must come from the cache")
	assert.Equal(t, first.Key, second.Key)

	// A different sample rate is a different snapshot.
	_, err = r.Info("t:zero", 48000)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
