// Package constants holds process-wide constant values.
package constants

// Deployment stages
const (
	StageLocal = "local"
	StageDev   = "dev"
	StageProd  = "prod"
)

// IsValidStage reports whether stage is one of the known deployment stages.
func IsValidStage(stage string) bool {
	return stage == StageLocal || stage == StageDev || stage == StageProd
}

// ServiceName identifies this service in structured log output.
const ServiceName = "dgi-api"
