package postboard

import (
	"fmt"

	"github.com/bft-labs/postboard/pkg/httpclient"
	"github.com/bft-labs/postboard/pkg/log"
	"github.com/bft-labs/postboard/pkg/persist"
	"github.com/bft-labs/postboard/pkg/store"
)

// Version information for the postboard module.
const (
	// Version is the current version of the postboard module.
	Version = "1.0.0"

	// MinCompatibleVersion is the minimum version that is compatible with this version.
	MinCompatibleVersion = "1.0.0"
)

// validateModuleVersions checks that all module versions are compatible.
// Returns an error if any module version is below its minimum compatible version.
func validateModuleVersions() error {
	modules := map[string]struct {
		version    string
		minVersion string
	}{
		"store":      {store.Version, store.MinCompatibleVersion},
		"persist":    {persist.Version, persist.MinCompatibleVersion},
		"httpclient": {httpclient.Version, httpclient.MinCompatibleVersion},
		"log":        {log.Version, log.MinCompatibleVersion},
	}

	for name, m := range modules {
		if !isVersionCompatible(m.version, m.minVersion) {
			return fmt.Errorf("module %s version %s is below minimum compatible version %s",
				name, m.version, m.minVersion)
		}
	}

	return nil
}

// isVersionCompatible checks if version >= minVersion.
// Versions are expected in "major.minor.patch" form.
func isVersionCompatible(version, minVersion string) bool {
	var vMajor, vMinor, vPatch int
	var mMajor, mMinor, mPatch int

	_, _ = fmt.Sscanf(version, "%d.%d.%d", &vMajor, &vMinor, &vPatch)
	_, _ = fmt.Sscanf(minVersion, "%d.%d.%d", &mMajor, &mMinor, &mPatch)

	if vMajor != mMajor {
		return vMajor > mMajor
	}
	if vMinor != mMinor {
		return vMinor > mMinor
	}
	return vPatch >= mPatch
}
