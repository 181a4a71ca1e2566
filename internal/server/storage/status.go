package storage

// Status is the closed set of outcomes the gateway reports to callers.
// Every operation resolves to exactly one Status; no underlying transport
// errors leak past the gateway boundary.
type Status int

const (
	// Ok means the stage (or whole operation) succeeded.
	Ok Status = iota
	// BadRequest means the request cannot proceed as given: invalid local
	// path, unresolved bucket for a dependent stage, missing folder, or a
	// local filename collision on download.
	BadRequest
	// NotFound means the bucket or object does not exist.
	NotFound
	// Conflict means an object already exists at the target key; uploads
	// never silently overwrite.
	Conflict
	// Internal means the storage backend or a local stream failed.
	Internal
)

// Code maps a Status onto the serializable code vocabulary route handlers
// consume. Conflict shares 400 with BadRequest.
func (s Status) Code() int {
	switch s {
	case Ok:
		return 200
	case BadRequest, Conflict:
		return 400
	case NotFound:
		return 404
	default:
		return 500
	}
}

func (s Status) String() string {
	switch s {
	case Ok:
		return "ok"
	case BadRequest:
		return "bad request"
	case NotFound:
		return "not found"
	case Conflict:
		return "conflict"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}
