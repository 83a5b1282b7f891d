package vamphost

import "github.com/kelben/vamphost/vamp"

// FeatureMap is one feature in host form. Keys:
//
//	"timestamp"  realtime.RealTime  (only when the feature carries one)
//	"duration"   realtime.RealTime  (only when carried)
//	"label"      string             (always present, may be empty)
//	"values"     []float32          (only when non-empty)
//
// Absence of a key means "not applicable", which is distinct from a key
// present with a zero value.
type FeatureMap map[string]any

// FeatureSet is the host form of one process or remaining-features
// result: output index to the ordered features emitted there. Outputs
// that emitted nothing are not present.
type FeatureSet map[int][]FeatureMap

// convertFeatureSet lifts a plugin feature set into host form, eliding
// outputs with empty feature lists and preserving feature order.
func convertFeatureSet(fs vamp.FeatureSet) FeatureSet {
	out := make(FeatureSet, len(fs))
	for index, features := range fs {
		if len(features) == 0 {
			continue
		}
		converted := make([]FeatureMap, len(features))
		for i, f := range features {
			fm := FeatureMap{"label": f.Label}
			if f.HasTimestamp {
				fm["timestamp"] = f.Timestamp
			}
			if f.HasDuration {
				fm["duration"] = f.Duration
			}
			if len(f.Values) > 0 {
				fm["values"] = VectorToFloats(f.Values)
			}
			converted[i] = fm
		}
		out[index] = converted
	}
	return out
}
