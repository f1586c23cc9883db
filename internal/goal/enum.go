package goal

type GoalType string

const (
	TypeTriathlon        GoalType = "triathlon"
	TypeIronman          GoalType = "ironman"
	TypeMarathon         GoalType = "marathon"
	TypeHalfMarathon     GoalType = "half_marathon"
	TypeTenK             GoalType = "10k"
	TypeFiveK            GoalType = "5k"
	TypeCycling          GoalType = "cycling"
	TypeCenturyRide      GoalType = "century_ride"
	TypeSwimming         GoalType = "swimming"
	TypeObstacleRace     GoalType = "obstacle_race"
	TypeWeightLoss       GoalType = "weight_loss"
	TypeMuscleGain       GoalType = "muscle_gain"
	TypeStrengthTraining GoalType = "strength_training"
	TypeGeneralFitness   GoalType = "general_fitness"
	TypeCustom           GoalType = "custom"
)

var AllGoalTypes = []GoalType{
	TypeTriathlon,
	TypeIronman,
	TypeMarathon,
	TypeHalfMarathon,
	TypeTenK,
	TypeFiveK,
	TypeCycling,
	TypeCenturyRide,
	TypeSwimming,
	TypeObstacleRace,
	TypeWeightLoss,
	TypeMuscleGain,
	TypeStrengthTraining,
	TypeGeneralFitness,
	TypeCustom,
}

func (t GoalType) IsValid() bool {
	for _, v := range AllGoalTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Category groups goal types that share the same details and validation.
type Category string

const (
	CategoryRace     Category = "race"
	CategoryWeight   Category = "weight"
	CategoryStrength Category = "strength"
	CategoryGeneral  Category = "general"
)

func (t GoalType) Category() Category {
	switch t {
	case TypeTriathlon, TypeIronman, TypeMarathon, TypeHalfMarathon, TypeTenK, TypeFiveK,
		TypeCycling, TypeCenturyRide, TypeSwimming, TypeObstacleRace:
		return CategoryRace
	case TypeWeightLoss, TypeMuscleGain:
		return CategoryWeight
	case TypeStrengthTraining:
		return CategoryStrength
	default:
		return CategoryGeneral
	}
}

type Status string

const (
	StatusPlanning  Status = "planning"
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusArchived  Status = "archived"
)

var AllStatuses = []Status{
	StatusPlanning,
	StatusActive,
	StatusPaused,
	StatusCompleted,
	StatusCancelled,
	StatusArchived,
}

func (s Status) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

var transitions = map[Status][]Status{
	StatusPlanning:  {StatusActive, StatusCancelled},
	StatusActive:    {StatusPaused, StatusCompleted, StatusCancelled},
	StatusPaused:    {StatusActive, StatusCancelled},
	StatusCompleted: {StatusArchived},
}

func (s Status) CanTransitionTo(to Status) bool {
	for _, v := range transitions[s] {
		if v == to {
			return true
		}
	}
	return false
}

// Open reports whether the goal can still get a (new) training plan.
func (s Status) Open() bool {
	return s == StatusPlanning || s == StatusActive || s == StatusPaused
}

// GenerationStatus tracks plan synthesis for a goal.
type GenerationStatus string

const (
	GenerationIdle    GenerationStatus = "idle"
	GenerationPending GenerationStatus = "pending"
	GenerationReady   GenerationStatus = "ready"
	GenerationFailed  GenerationStatus = "failed"
)
