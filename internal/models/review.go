package models

// Review is immutable once created. One review per (shift, author) is
// enforced by the composite unique index.
type Review struct {
	BaseModel
	ShiftID   string `gorm:"not null;index;uniqueIndex:idx_review_shift_author"`
	AuthorID  string `gorm:"not null;uniqueIndex:idx_review_shift_author"`
	SubjectID string `gorm:"not null;index"`
	Rating    int    `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string `gorm:"size:500"`

	// Relations
	Shift *Shift `gorm:"foreignKey:ShiftID"`
}

const ReviewCommentMaxLen = 500
