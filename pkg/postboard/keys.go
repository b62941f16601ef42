package postboard

// Well-known provide keys and the default mount point.
const (
	// StoresKey is the key the store registry is provided under.
	StoresKey = "stores"

	// HTTPClientKey is the key the shared HTTP client is provided under.
	HTTPClientKey = "http"

	// MountPoint is the element id the root component is mounted on.
	MountPoint = "#app"
)
