package plugin

// Mode describes what kind of invocation the host build tool is running.
// It is a closed variant: ProductionBuild or DevServer.
type Mode interface {
	isMode()
}

// ProductionBuild is a bundling invocation producing a distributable
// output directory. Only production builds persist a snapshot artifact.
type ProductionBuild struct {
	// DistDirPath is the build output directory.
	DistDirPath string
	// AssetsURLPath is the public base URL path the bundle is served under.
	AssetsURLPath string
}

func (ProductionBuild) isMode() {}

// DevServer is a development-server invocation. HTML finalization still
// runs, no artifact is written.
type DevServer struct{}

func (DevServer) isMode() {}
