package platform

type contextVersion struct {
	major, minor int
}

// programmableVersions lists core profiles from the most capable down.
var programmableVersions = []contextVersion{
	{4, 6}, {4, 5}, {4, 4}, {4, 3}, {4, 2}, {4, 1}, {4, 0}, {3, 3}, {3, 2},
}

// candidateVersions starts at the requested version and walks down the list.
func candidateVersions(caps Capabilities) []contextVersion {
	for i, v := range programmableVersions {
		if v.major < caps.ContextMajor || (v.major == caps.ContextMajor && v.minor <= caps.ContextMinor) {
			return programmableVersions[i:]
		}
	}
	return programmableVersions
}
