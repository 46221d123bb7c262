package models

type User struct {
	BaseModel
	Email        string   `gorm:"uniqueIndex;not null"`
	PasswordHash string   `gorm:"not null"`
	Role         UserRole `gorm:"type:varchar(20);not null"`
	FullName     string
	Phone        string

	// Relations
	Verification  *VerificationProfile `gorm:"foreignKey:UserID"`
	WorkerProfile *WorkerProfile       `gorm:"foreignKey:UserID"`
	HirerProfile  *HirerProfile        `gorm:"foreignKey:UserID"`
}
