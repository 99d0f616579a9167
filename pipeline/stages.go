package pipeline

// Stage names one step of the save pipeline. Callers (HTTP handler, CLI)
// render stage results however they like; the pipeline does no user-facing
// notification itself.
type Stage string

const (
	StageImageAnalysis   Stage = "image_analysis"
	StageEmbedding       Stage = "embedding"
	StageMetadataPersist Stage = "metadata_persist"
	StageIndexWrite      Stage = "index_write"
)

type StageResult struct {
	Stage Stage  `json:"stage"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type StageResults []StageResult

func (rs StageResults) AllOK() bool {
	for _, r := range rs {
		if !r.OK {
			return false
		}
	}
	return true
}

func ok(stage Stage) StageResult {
	return StageResult{Stage: stage, OK: true}
}

func failed(stage Stage, err error) StageResult {
	return StageResult{Stage: stage, Error: err.Error()}
}
