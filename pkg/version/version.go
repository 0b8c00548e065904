package version

// Version is the release version of the module. Overridden at release
// build time with -ldflags "-X github.com/garronej/react-envs/pkg/version.Version=...".
var Version = "0.0.0-dev"
