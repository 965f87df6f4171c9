package discoveryclient

type Status string

const (
	STATUS_DRAFT    Status = "Draft"
	STATUS_LIVE     Status = "Live"
	STATUS_CLOSED   Status = "Closed"
	STATUS_ARCHIVED Status = "Archived"
)

var statusFromBackend = map[string]Status{
	"draft":    STATUS_DRAFT,
	"active":   STATUS_LIVE,
	"closed":   STATUS_CLOSED,
	"archived": STATUS_ARCHIVED,
}

// MapStatus converts a backend status. Unknown values become Draft.
func MapStatus(status string) Status {
	if s, ok := statusFromBackend[status]; ok {
		return s
	}
	return STATUS_DRAFT
}

// BackendStatus is the inverse of MapStatus; ok is false for values that have no backend form.
func BackendStatus(status Status) (string, bool) {
	for backend, s := range statusFromBackend {
		if s == status {
			return backend, true
		}
	}
	return "", false
}
