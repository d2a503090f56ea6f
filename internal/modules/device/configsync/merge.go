package configsync

// Merge deep-merges patch onto base and returns the candidate document.
// Objects merge recursively key-by-key. Anything else — scalars and,
// deliberately, arrays — is replaced wholesale by the patch value: array
// order carries meaning (favorite-team priority), so element-wise blending
// would silently scramble it. Keys absent from patch keep the base value.
func Merge(base, patch map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base)+len(patch))
	for k, v := range base {
		out[k] = v
	}
	for k, pv := range patch {
		if bm, ok := out[k].(map[string]interface{}); ok {
			if pm, ok := pv.(map[string]interface{}); ok {
				out[k] = Merge(bm, pm)
				continue
			}
		}
		out[k] = pv
	}
	return out
}

// DefaultConfig is the base document used when a device has no stored
// configuration yet. It carries only device-local settings; the sports
// list must come from the patch and the schema enforces its presence.
func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"timezone": "America/Los_Angeles",
		"matrix": map[string]interface{}{
			"width":      64,
			"height":     32,
			"chain":      1,
			"brightness": 70,
		},
		"refresh": map[string]interface{}{
			"live_seconds": 15,
			"idle_seconds": 300,
		},
		"render": map[string]interface{}{
			"layout": "scoreboard",
		},
	}
}
