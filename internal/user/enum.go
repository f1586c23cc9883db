package user

type Role string

const (
	RoleAthlete Role = "athlete"
	RoleAdmin   Role = "admin"
)

type FitnessLevel string

const (
	FitnessBeginner     FitnessLevel = "beginner"
	FitnessIntermediate FitnessLevel = "intermediate"
	FitnessAdvanced     FitnessLevel = "advanced"
)

var AllFitnessLevels = []FitnessLevel{
	FitnessBeginner,
	FitnessIntermediate,
	FitnessAdvanced,
}

func (f FitnessLevel) IsValid() bool {
	for _, v := range AllFitnessLevels {
		if f == v {
			return true
		}
	}
	return false
}

type Experience string

const (
	ExperienceBeginner     Experience = "beginner"
	ExperienceNovice       Experience = "novice"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceAdvanced     Experience = "advanced"
	ExperienceExpert       Experience = "expert"
)

var AllExperiences = []Experience{
	ExperienceBeginner,
	ExperienceNovice,
	ExperienceIntermediate,
	ExperienceAdvanced,
	ExperienceExpert,
}

func (e Experience) IsValid() bool {
	for _, v := range AllExperiences {
		if e == v {
			return true
		}
	}
	return false
}
