package config

// Merge deep-merges partial configuration layers, applied left to right with
// later layers taking precedence. When both sides hold a plain object the
// merge recurses; every other pairing (including arrays, which are never
// concatenated or element-merged) is a wholesale replacement by the incoming
// layer's value. The rule applies uniformly at every nesting depth.
//
// Input layers are never mutated; maps in the result are fresh copies, so the
// result can be interpolated and validated without touching the sources.
func Merge(layers ...map[string]any) map[string]any {
	merged := make(map[string]any)
	for _, layer := range layers {
		mergeMap(merged, layer)
	}
	return merged
}

func mergeMap(dst, src map[string]any) map[string]any {
	for key, value := range src {
		srcObj, srcIsObj := value.(map[string]any)
		if !srcIsObj {
			dst[key] = value
			continue
		}
		dstObj, dstIsObj := dst[key].(map[string]any)
		if !dstIsObj {
			// Fresh copy so later layers merging here never reach back
			// into the source layer.
			dstObj = make(map[string]any, len(srcObj))
		}
		dst[key] = mergeMap(dstObj, srcObj)
	}
	return dst
}
