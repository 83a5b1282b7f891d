// Package host supplies plugin handles to the adapter: a registry of
// plugin factories keyed the Vamp way ("library:plugin"), a loader that
// wraps fresh instances in vamphost handles, and a cached descriptor
// snapshot view for browsing without paying instantiation on every query.
//
// The registry is deliberately an ordinary value rather than process-wide
// state; embedders construct one, register their plugin factories and
// pass it around. A cgo-backed loader for shared-object plugins can sit
// behind the same Factory signature without the adapter noticing.
package host

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	vamphost "github.com/kelben/vamphost"
	"github.com/kelben/vamphost/vamp"
)

// ErrUnknownPlugin is returned when a key has no registered factory.
var ErrUnknownPlugin = errors.New("unknown plugin key")

// Factory instantiates a fresh native plugin for the given sample rate.
// Each call must return an independent instance; the loader takes
// ownership of whatever it gets.
type Factory func(sampleRate float64) vamp.Plugin

// Snapshot is a static descriptor view of one plugin at one sample rate,
// taken from a throwaway instance before initialisation. It is suitable
// for listings and documentation; processing hosts must go through Load
// and re-query outputs after Initialise.
type Snapshot struct {
	Key         string           `json:"key"`
	SampleRate  float64          `json:"sampleRate"`
	InputDomain string           `json:"inputDomain"`
	Info        map[string]any   `json:"info"`
	Parameters  []map[string]any `json:"parameters"`
	Outputs     []map[string]any `json:"outputs"`
}

const snapshotCacheSize = 128

// Registry maps plugin keys to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	snapshots *lru.Cache[string, Snapshot]
	log       zerolog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger routes registry and loader events to the given logger.
// Without it the registry is silent.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Registry) { r.log = log }
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	cache, _ := lru.New[string, Snapshot](snapshotCacheSize)
	r := &Registry{
		factories: make(map[string]Factory),
		snapshots: cache,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a factory under the given key. Keys must be unique and
// non-empty.
func (r *Registry) Register(key string, factory Factory) error {
	if key == "" {
		return errors.New("host: empty plugin key")
	}
	if factory == nil {
		return errors.New("host: nil factory")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[key]; exists {
		return fmt.Errorf("host: plugin key %q already registered", key)
	}
	r.factories[key] = factory
	r.log.Debug().Str("key", key).Msg("registered plugin factory")
	return nil
}

// Keys returns the registered plugin keys, sorted.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.factories))
	for key := range r.factories {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (r *Registry) factory(key string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlugin, key)
	}
	return factory, nil
}

// Load instantiates the plugin registered under key for the given sample
// rate and hands back an owning handle in the Created state.
func (r *Registry) Load(key string, sampleRate float64) (*vamphost.Plugin, error) {
	factory, err := r.factory(key)
	if err != nil {
		return nil, err
	}
	native := factory(sampleRate)
	if native == nil {
		return nil, fmt.Errorf("host: factory for %q returned no instance", key)
	}
	handle, err := vamphost.New(native)
	if err != nil {
		return nil, fmt.Errorf("host: loading %q: %w", key, err)
	}
	r.log.Info().Str("key", key).Float64("sampleRate", sampleRate).Msg("loaded plugin")
	return handle, nil
}

// Info returns the descriptor snapshot for key at sampleRate. Snapshots
// are cached: the first query instantiates the plugin, reads its
// descriptors and unloads it again; repeats are served from the cache.
func (r *Registry) Info(key string, sampleRate float64) (Snapshot, error) {
	cacheKey := fmt.Sprintf("%s@%g", key, sampleRate)
	if snap, ok := r.snapshots.Get(cacheKey); ok {
		return snap, nil
	}

	handle, err := r.Load(key, sampleRate)
	if err != nil {
		return Snapshot{}, err
	}
	defer handle.Unload()

	outputs, err := handle.Outputs()
	if err != nil {
		return Snapshot{}, fmt.Errorf("host: reading outputs of %q: %w", key, err)
	}
	snap := Snapshot{
		Key:         key,
		SampleRate:  sampleRate,
		InputDomain: handle.InputDomain().String(),
		Info:        handle.Info(),
		Parameters:  handle.Parameters(),
		Outputs:     outputs,
	}
	r.snapshots.Add(cacheKey, snap)
	return snap, nil
}
