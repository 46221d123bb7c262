package dto

type UpdateWorkerProfileRequest struct {
	SkillCategory     *string  `json:"skill_category,omitempty" validate:"omitempty,max=80"`
	YearsOfExperience *int     `json:"years_of_experience,omitempty" validate:"omitempty,min=0,max=60"`
	AboutMe           *string  `json:"about_me,omitempty" validate:"omitempty,max=2000"`
	HourlyRate        *float64 `json:"hourly_rate,omitempty" validate:"omitempty,gt=0"`
	Address           *string  `json:"address,omitempty" validate:"omitempty,max=200"`
	City              *string  `json:"city,omitempty" validate:"omitempty,max=80"`
	Latitude          *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude         *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Skills            []string `json:"skills,omitempty"`
	IsAvailable       *bool    `json:"is_available,omitempty"`
}

type UpdateHirerProfileRequest struct {
	DisplayName   *string `json:"display_name,omitempty" validate:"omitempty,max=100"`
	CompanyName   *string `json:"company_name,omitempty" validate:"omitempty,max=120"`
	ContactPerson *string `json:"contact_person,omitempty" validate:"omitempty,max=100"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	City          *string `json:"city,omitempty" validate:"omitempty,max=80"`
	Description   *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

type WorkerProfileResponse struct {
	UserID               string   `json:"user_id"`
	SkillCategory        string   `json:"skill_category,omitempty"`
	YearsOfExperience    int      `json:"years_of_experience"`
	AboutMe              string   `json:"about_me,omitempty"`
	HourlyRate           float64  `json:"hourly_rate"`
	Address              string   `json:"address,omitempty"`
	City                 string   `json:"city,omitempty"`
	Latitude             *float64 `json:"latitude,omitempty"`
	Longitude            *float64 `json:"longitude,omitempty"`
	Skills               []string `json:"skills,omitempty"`
	IsAvailable          bool     `json:"is_available"`
	AverageRating        float64  `json:"average_rating"`
	ReviewCount          int      `json:"review_count"`
	TotalJobsCompleted   int      `json:"total_jobs_completed"`
	CompletionPercentage int      `json:"completion_percentage"`
}

type HirerProfileResponse struct {
	UserID        string  `json:"user_id"`
	DisplayName   string  `json:"display_name,omitempty"`
	CompanyName   string  `json:"company_name,omitempty"`
	ContactPerson string  `json:"contact_person,omitempty"`
	Phone         string  `json:"phone,omitempty"`
	City          string  `json:"city,omitempty"`
	Description   string  `json:"description,omitempty"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}

type WorkerSearchRequest struct {
	City          string   `form:"city"`
	SkillCategory string   `form:"skill_category"`
	MaxHourlyRate *float64 `form:"max_hourly_rate"`
	Page          int      `form:"page"`
	PageSize      int      `form:"page_size"`
}
