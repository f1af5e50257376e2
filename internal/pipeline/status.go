package pipeline

// Status is the lifecycle stage of a project, strictly increasing under
// normal operation. StatusImported is a separate terminal branch reached
// only by the JSON import and never advanced further.
type Status int

const (
	StatusCreated     Status = 0
	StatusDiarized    Status = 1
	StatusTranscribed Status = 2
	StatusResumed     Status = 3
	StatusImported    Status = 4
)

func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusDiarized:
		return "diarized"
	case StatusTranscribed:
		return "transcribed"
	case StatusResumed:
		return "resumed"
	case StatusImported:
		return "imported"
	default:
		return "unknown"
	}
}
