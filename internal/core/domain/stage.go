package domain

// Stage is a pipeline state for a single build. The machine is strictly
// linear: Failed is reachable from every non-terminal stage, Succeeded only
// from Verifying, and no stage is re-entered. A retry starts over with a
// fresh request.
type Stage string

const (
	StagePending    Stage = "Pending"
	StageResolving  Stage = "Resolving"
	StageAssembling Stage = "Assembling"
	StageExecuting  Stage = "Executing"
	StageVerifying  Stage = "Verifying"
	StageSucceeded  Stage = "Succeeded"
	StageFailed     Stage = "Failed"
)

// Terminal reports whether the stage ends the pipeline.
func (s Stage) Terminal() bool {
	return s == StageSucceeded || s == StageFailed
}

var nextStage = map[Stage]Stage{
	StagePending:    StageResolving,
	StageResolving:  StageAssembling,
	StageAssembling: StageExecuting,
	StageExecuting:  StageVerifying,
	StageVerifying:  StageSucceeded,
}

// CanTransition reports whether moving from s to to is legal.
func (s Stage) CanTransition(to Stage) bool {
	if s.Terminal() {
		return false
	}
	if to == StageFailed {
		return true
	}
	return nextStage[s] == to
}

// Next returns the stage that follows s on the success path.
func (s Stage) Next() Stage {
	return nextStage[s]
}
