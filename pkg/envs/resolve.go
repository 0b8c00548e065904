package envs

// Resolution is the canonical environment view for one build invocation.
type Resolution struct {
	// Merged is the single environment used for HTML templating and
	// runtime injection.
	Merged map[string]string
	// Accepted holds the variable names declared by the build tool
	// configuration or the general environment file. Only these names
	// may be overridden from the process environment.
	Accepted map[string]struct{}
}

// IsAccepted reports whether the variable name is declared for this build.
func (r Resolution) IsAccepted(name string) bool {
	_, ok := r.Accepted[name]
	return ok
}

// Resolve merges the configuration sources into one environment view.
// Precedence, weakest first: build-time defaults, the general environment
// file, the local-override environment file, the process environment.
// Process environment entries win last but only for accepted names, so
// unrelated process variables never leak into client-visible output.
func Resolve(baseBuildTimeEnv, fileEnv, fileEnvLocal, processEnv map[string]string) Resolution {
	accepted := map[string]struct{}{}
	for k := range baseBuildTimeEnv {
		accepted[k] = struct{}{}
	}
	for k := range fileEnv {
		accepted[k] = struct{}{}
	}

	filteredProcessEnv := map[string]string{}
	for k, v := range processEnv {
		if _, ok := accepted[k]; ok {
			filteredProcessEnv[k] = v
		}
	}

	return Resolution{
		Merged:   overlay(baseBuildTimeEnv, fileEnv, fileEnvLocal, filteredProcessEnv),
		Accepted: accepted,
	}
}

// overlay applies the maps left to right, later keys overwrite earlier
// ones for identical names.
func overlay(maps ...map[string]string) map[string]string {
	merged := map[string]string{}
	for _, m := range maps {
		for k, v := range m {
			merged[k] = v
		}
	}
	return merged
}
