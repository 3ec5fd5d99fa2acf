package build

// Stage is one step of a build. Stages run in declaration order and the
// first failing one ends the build.
type Stage int

const (
	StageDiscover Stage = iota
	// parse and render run together per document
	StageRender
	StageAggregate
	StageRewrite
	StageWrite
	StageDone
)

var stageNames = [...]string{
	StageDiscover:  "discover",
	StageRender:    "render",
	StageAggregate: "aggregate",
	StageRewrite:   "rewrite-indices",
	StageWrite:     "write",
	StageDone:      "done",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}
