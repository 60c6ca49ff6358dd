package redis

const (
	// KeyLatest holds the JSON document of the most recent broadcast.
	KeyLatest = "fourtwenty:signals:latest"
	// KeyAcceptedCount counts broadcasts accepted since the mirror existed.
	KeyAcceptedCount = "fourtwenty:broadcasts:accepted"
	// KeyPrefixModuleCount counts accepted broadcasts per module.
	KeyPrefixModuleCount = "fourtwenty:broadcasts:module:"
)

// ModuleCountKey returns the per-module counter key.
func ModuleCountKey(moduleID string) string {
	return KeyPrefixModuleCount + moduleID
}
