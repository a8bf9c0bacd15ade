package collision

import "github.com/lixenwraith/terrain-tracer/traceframe"

func lastFrame(frames []traceframe.Frame) traceframe.Frame {
	if len(frames) == 0 {
		return traceframe.Frame{}
	}
	return frames[len(frames)-1]
}
