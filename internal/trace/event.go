package trace

import "time"

// Kind classifies a trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1 // start of a timed operation
	KindSpanEnd                   // end of a timed operation
	KindPoint                     // instant event
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event. Lower values are coarser.
type Scope uint8

const (
	// ScopeDriver covers top-level per-file operations.
	ScopeDriver Scope = iota + 1
	// ScopePass covers decoding phases (read, index, collect, flatten).
	ScopePass
	// ScopeEntity covers per-variable processing.
	ScopeEntity
	ScopeNode // DIE level, the most detailed
)

var scopeNames = [...]string{
	ScopeDriver: "driver",
	ScopePass:   "pass",
	ScopeEntity: "entity",
	ScopeNode:   "node",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // monotonic, process-wide
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for root spans
	GID      uint64
	Name     string // "collect", "file:./a.out"
	Detail   string
	Extra    map[string]string
}
