package gfx

import "github.com/kjkrol/cleargl/internal/platform"

const depthBits = 32

// requestedCapabilities starts from the best programmable profile and asks
// for multisampling when more than one sample is wanted.
func requestedCapabilities(profile platform.Capabilities, samples int) platform.Capabilities {
	caps := profile
	caps.SampleBuffers = samples > 1
	caps.Samples = samples
	caps.DepthBits = depthBits
	return caps
}

// obtainedCapabilities reads the multisample state of the current context
// on top of what the platform negotiated.
func obtainedCapabilities(gl GL, negotiated platform.Capabilities) platform.Capabilities {
	var sampleBuffers, samples int32
	gl.GetIntegerv(SampleBuffers, &sampleBuffers)
	gl.GetIntegerv(Samples, &samples)
	caps := negotiated
	caps.SampleBuffers = sampleBuffers > 0
	caps.Samples = int(samples)
	return caps
}

// checkAntialiasing warns when requested antialiasing is lost. It reports
// whether the obtained context is multisampled as requested.
func checkAntialiasing(desired, obtained platform.Capabilities) bool {
	if !desired.SampleBuffers {
		return true
	}
	if !obtained.SampleBuffers {
		Logger().Warn("antialiasing will be disabled because none of the available pixel formats had it to offer")
		return false
	}
	if obtained.Samples < desired.Samples {
		Logger().Info("fewer samples than requested", "requested", desired.Samples, "obtained", obtained.Samples)
	}
	return true
}
