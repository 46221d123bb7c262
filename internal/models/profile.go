package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SearchVisibilityThreshold is the minimum profile completion (percent)
// before a worker shows up in hirer-side search.
const SearchVisibilityThreshold = 80

type WorkerProfile struct {
	BaseModel
	UserID            string `gorm:"uniqueIndex;not null"`
	SkillCategory     string
	YearsOfExperience int
	AboutMe           string
	HourlyRate        float64
	Address           string
	City              string
	Latitude          *float64
	Longitude         *float64
	Skills            datatypes.JSON `gorm:"type:jsonb"` // ["plumbing", "wiring"]
	IsAvailable       bool           `gorm:"default:true"`

	// Denormalized completion, kept current by BeforeSave so the search
	// visibility gate can run in SQL
	CompletionPct int `gorm:"default:0;index"`

	// Aggregates, updated by shift completion and review submission
	AverageRating      float64 `gorm:"default:0"`
	ReviewCount        int     `gorm:"default:0"`
	TotalJobsCompleted int     `gorm:"default:0"`
}

type HirerProfile struct {
	BaseModel
	UserID        string `gorm:"uniqueIndex;not null"`
	DisplayName   string
	CompanyName   string
	ContactPerson string
	Phone         string
	City          string
	Description   string

	AverageRating float64 `gorm:"default:0"`
	ReviewCount   int     `gorm:"default:0"`
}

func (p *WorkerProfile) GetSkills() []string {
	var skills []string
	if len(p.Skills) > 0 {
		_ = json.Unmarshal(p.Skills, &skills)
	}
	return skills
}

func (p *WorkerProfile) SetSkills(skills []string) {
	data, _ := json.Marshal(skills)
	p.Skills = datatypes.JSON(data)
}

// CompletionPercentage derives profile completion from field presence.
// All completion math lives here so search gating and the API agree.
func (p *WorkerProfile) CompletionPercentage() int {
	checks := []bool{
		p.SkillCategory != "",
		p.YearsOfExperience > 0,
		p.AboutMe != "",
		p.HourlyRate > 0,
		p.Address != "",
		p.City != "",
		p.Latitude != nil && p.Longitude != nil,
		len(p.GetSkills()) > 0,
	}
	filled := 0
	for _, ok := range checks {
		if ok {
			filled++
		}
	}
	return filled * 100 / len(checks)
}

// IsSearchVisible reports whether the profile passes the completion gate.
func (p *WorkerProfile) IsSearchVisible() bool {
	return p.CompletionPercentage() >= SearchVisibilityThreshold
}

// BeforeSave refreshes the stored completion percentage on create and on
// full-profile saves. Column-level updates (ratings, job counters) don't
// touch completion inputs.
func (p *WorkerProfile) BeforeSave(tx *gorm.DB) error {
	p.CompletionPct = p.CompletionPercentage()
	return nil
}
