package config

import (
	"embed"
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/settings.yaml
var defaultFiles embed.FS

// StudySettings holds the knobs of SRS scheduling and scoring
type StudySettings struct {
	SRS        SRSSettings       `yaml:"srs" json:"srs"`
	Quiz       QuizDefaults      `yaml:"quiz" json:"quiz"`
	Challenges ChallengeSettings `yaml:"challenges" json:"challenges"`
}

// SRSSettings is the fixed interval table and the level at which a question leaves the queue
type SRSSettings struct {
	IntervalsDays         []int `yaml:"intervals_days" json:"intervalsDays"`
	GraduationRequirement int   `yaml:"graduation_requirement" json:"graduationRequirement"`
}

type QuizDefaults struct {
	PenaltySystem          string `yaml:"penalty_system" json:"penaltySystem"`
	DefaultNumberOfOptions int    `yaml:"default_number_of_options" json:"defaultNumberOfOptions"`
}

type ChallengeSettings struct {
	WeeklyQuestionCount  int `yaml:"weekly_question_count" json:"weeklyQuestionCount"`
	MonthlyQuestionCount int `yaml:"monthly_question_count" json:"monthlyQuestionCount"`
}

// DefaultStudySettings returns the embedded defaults
func DefaultStudySettings() (*StudySettings, error) {
	data, err := defaultFiles.ReadFile("defaults/settings.yaml")
	if err != nil {
		return nil, fmt.Errorf("read default settings: %w", err)
	}

	var s StudySettings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal default settings: %w", err)
	}
	return &s, nil
}

// LoadStudySettings returns the embedded defaults overlaid with the YAML file at
// path. Keys missing from the file keep their default value. An empty path
// returns the defaults.
func LoadStudySettings(path string) (*StudySettings, error) {
	s, err := DefaultStudySettings()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}
	// Unmarshalling onto the defaults only replaces keys present in the file
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return s, nil
}

// Validate checks the settings are usable by the scheduler and scorer
func (s *StudySettings) Validate() error {
	if err := validation.ValidateStruct(&s.SRS,
		validation.Field(&s.SRS.IntervalsDays, validation.Required, validation.Each(validation.Min(0))),
		validation.Field(&s.SRS.GraduationRequirement, validation.Required, validation.Min(1)),
	); err != nil {
		return fmt.Errorf("srs: %w", err)
	}
	if err := validation.ValidateStruct(&s.Quiz,
		validation.Field(&s.Quiz.PenaltySystem, validation.Required, validation.In("standard", "none")),
		validation.Field(&s.Quiz.DefaultNumberOfOptions, validation.Required, validation.Min(2)),
	); err != nil {
		return fmt.Errorf("quiz: %w", err)
	}
	if err := validation.ValidateStruct(&s.Challenges,
		validation.Field(&s.Challenges.WeeklyQuestionCount, validation.Required, validation.Min(1)),
		validation.Field(&s.Challenges.MonthlyQuestionCount, validation.Required, validation.Min(1)),
	); err != nil {
		return fmt.Errorf("challenges: %w", err)
	}
	return nil
}
