package dto

import "time"

type SubmitReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=500"`
}

type ReviewResponse struct {
	ID        string    `json:"id"`
	ShiftID   string    `json:"shift_id"`
	AuthorID  string    `json:"author_id"`
	SubjectID string    `json:"subject_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CanReviewResponse struct {
	CanReview bool   `json:"can_review"`
	Reason    string `json:"reason,omitempty"`
}
