package training

type WorkoutType string

const (
	Swim          WorkoutType = "swim"
	Bike          WorkoutType = "bike"
	Run           WorkoutType = "run"
	Strength      WorkoutType = "strength"
	Rest          WorkoutType = "rest"
	CrossTraining WorkoutType = "cross_training"
	Brick         WorkoutType = "brick"
)

var AllWorkoutTypes = []WorkoutType{
	Swim,
	Bike,
	Run,
	Strength,
	Rest,
	CrossTraining,
	Brick,
}

func (t WorkoutType) IsValid() bool {
	for _, v := range AllWorkoutTypes {
		if t == v {
			return true
		}
	}
	return false
}

type Intensity string

const (
	Recovery Intensity = "recovery"
	Easy     Intensity = "easy"
	Moderate Intensity = "moderate"
	Hard     Intensity = "hard"
	VeryHard Intensity = "very_hard"
)

var AllIntensities = []Intensity{
	Recovery,
	Easy,
	Moderate,
	Hard,
	VeryHard,
}

func (i Intensity) IsValid() bool {
	for _, v := range AllIntensities {
		if i == v {
			return true
		}
	}
	return false
}

type IntensityAdjustment string

const (
	AdjustDecrease IntensityAdjustment = "decrease"
	AdjustIncrease IntensityAdjustment = "increase"
	AdjustMaintain IntensityAdjustment = "maintain"
)

type RecoveryAdjustment string

const (
	RecoveryMoreRest      RecoveryAdjustment = "more_rest"
	RecoveryCanPushHarder RecoveryAdjustment = "can_push_harder"
	RecoveryMaintain      RecoveryAdjustment = "maintain"
)
