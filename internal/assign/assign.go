package assign

import (
	"fmt"
	"strings"
	"time"
)

// SourceTag is the fixed middle segment of every derived broadcast id.
const SourceTag = "FourTwentyAnalytics"

// BaseID derives the deterministic base identifier for a submission that did
// not supply one: a compact UTC stamp, the source tag and the sanitized
// module id.
func BaseID(moduleID string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%s",
		now.UTC().Format("20060102T150405Z"),
		SourceTag,
		sanitizeModule(moduleID),
	)
}

// Resolve returns base unchanged when it is absent from existing, otherwise
// the first of base-1, base-2, ... that is. A client-supplied base that
// collides is suffixed the same way without signaling the caller; the
// response carries the final id.
func Resolve(base string, existing map[string]struct{}) string {
	if _, taken := existing[base]; !taken {
		return base
	}
	for suffix := 1; ; suffix++ {
		candidate := fmt.Sprintf("%s-%d", base, suffix)
		if _, taken := existing[candidate]; !taken {
			return candidate
		}
	}
}

// sanitizeModule makes a module id safe for use inside an identifier.
func sanitizeModule(moduleID string) string {
	moduleID = strings.ReplaceAll(moduleID, " ", "-")
	return strings.ReplaceAll(moduleID, "/", "-")
}
