package logfields

// Canonical log field names to avoid drift across packages.
const (
	KeyRoute      = "route"
	KeyFile       = "file"
	KeyCategory   = "category"
	KeyField      = "field"
	KeyDurationMS = "duration_ms"
	KeyPages      = "pages"
	KeyFailed     = "failed"
	KeyPath       = "path"
	KeyAddr       = "addr"
)
