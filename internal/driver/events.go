package driver

// Status describes where a file is in the scan.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	// StatusError means the file could not be loaded or scanned, or the scan
	// reported errors.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusWorking:
		return "scanning"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	default:
		return ""
	}
}

// Event is a progress notification for one file.
type Event struct {
	File   string
	Status Status
	Cached bool
}
