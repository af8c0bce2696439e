package pipeline

// Stage is a step of a pipeline run.
type Stage int

const (
	StageStart Stage = iota
	StageFetching
	StageParsing
	StageRendering
	StageSweeping
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StageFetching:
		return "fetching"
	case StageParsing:
		return "parsing"
	case StageRendering:
		return "rendering"
	case StageSweeping:
		return "sweeping"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}
