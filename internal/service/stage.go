package service

type Stage struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

const (
	StageBloodSugarDropping    = "Blood-sugar dropping"
	StageBloodSugarNormalizing = "Blood-sugar normalizing"
	StageFatBurning            = "Fat-burning"
	StageKetosis               = "Ketosis"
	StageAutophagy             = "Autophagy"
	StageDeepAutophagy         = "Deep autophagy"
)

// stages are ordered by ascending exclusive upper bound in hours.
var stages = []struct {
	below float64
	stage Stage
}{
	{4, Stage{StageBloodSugarDropping, "Insulin levels start to drop."}},
	{12, Stage{StageBloodSugarNormalizing, "Blood sugar levels are stabilizing."}},
	{18, Stage{StageFatBurning, "Body starts switching to fat as fuel."}},
	{24, Stage{StageKetosis, "The liver produces ketones for energy."}},
	{48, Stage{StageAutophagy, "Cells begin recycling old parts."}},
}

var deepAutophagy = Stage{StageDeepAutophagy, "Maximum cell regeneration and healing."}

// ClassifyStage maps fasting hours to a metabolic stage. Boundary values belong
// to the later stage; negative hours land in the first one.
func ClassifyStage(elapsedHours float64) Stage {
	for _, s := range stages {
		if elapsedHours < s.below {
			return s.stage
		}
	}
	return deepAutophagy
}
