package models

type Upload struct {
	BaseModel
	UserID        string `gorm:"not null;index"`
	Usage         string // "verification_document"
	Path          string `gorm:"not null"`
	ThumbnailPath string
	MimeType      string
	Size          int64
	OriginalName  string `gorm:"column:original_name"`
	URL           string `gorm:"column:url"`
}
