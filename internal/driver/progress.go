package driver

import "time"

// Stage identifies a step of the per-header extraction pipeline.
type Stage uint8

const (
	// StageLoad covers reading and normalizing a header from disk.
	StageLoad Stage = iota
	// StageScan covers splitting the header into declaration items.
	StageScan
	// StageExtract covers building the manifest from scanned items.
	StageExtract
	// StageEmit covers writing the manifest artifact.
	StageEmit
)

func (s Stage) String() string {
	switch s {
	case StageLoad:
		return "load"
	case StageScan:
		return "scan"
	case StageExtract:
		return "extract"
	case StageEmit:
		return "emit"
	default:
		return "unknown"
	}
}

// StageStatus reports whether a stage started or finished.
type StageStatus int

const (
	// StageBegin indicates that a pipeline stage has begun.
	StageBegin StageStatus = iota
	StageEnd
)

// Event describes a stage boundary for one header.
type Event struct {
	Path     string
	Stage    Stage
	Status   StageStatus
	Elapsed  time.Duration // заполняется на StageEnd
	CacheHit bool          // извлечение закрыто кэшем, скан не запускался
	Failed   bool          // стадия закончилась ошибкой
}

// ProgressSink receives events emitted during ExtractDir.
type ProgressSink func(Event)

// send доставляет событие, если подписчик вообще есть.
func (s ProgressSink) send(ev Event) {
	if s != nil {
		s(ev)
	}
}

// ChannelSink returns a sink that forwards every event into ch.
// The receiver must keep draining ch until ExtractDir returns.
func ChannelSink(ch chan<- Event) ProgressSink {
	return func(ev Event) {
		ch <- ev
	}
}
