package engine

type PipelinePhase string

const (
	PhaseBuild     PipelinePhase = "build"
	PhaseDiff      PipelinePhase = "diff"
	PhaseTransform PipelinePhase = "transform"
	PhaseCheck     PipelinePhase = "check"
	PhaseDerive    PipelinePhase = "derive"
)

// Fases do rule pack avaliadas pelo RuleExecutor.
const (
	RulePhaseGuards = "guards"
	RulePhaseDerive = "derive"
)
