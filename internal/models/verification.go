package models

// VerificationProfile tracks one user's identity-verification lifecycle:
// unverified -> pending -> approved | rejected. A rejected profile becomes
// editable again on the next document upload (explicit reset to unverified).
type VerificationProfile struct {
	BaseModel
	UserID          string             `gorm:"uniqueIndex;not null"`
	Role            UserRole           `gorm:"type:varchar(20);not null"`
	Status          VerificationStatus `gorm:"type:varchar(20);not null;default:'unverified'"`
	RejectionReason *string

	// Relations
	Documents []VerificationDocument `gorm:"foreignKey:ProfileID"`
}

// VerificationDocument stores one uploaded document reference per kind.
// Re-uploading a kind overwrites the row, it never duplicates.
type VerificationDocument struct {
	BaseModel
	ProfileID string       `gorm:"not null;index;uniqueIndex:idx_profile_doc_kind"`
	Kind      DocumentKind `gorm:"type:varchar(40);not null;uniqueIndex:idx_profile_doc_kind"`
	UploadID  string       `gorm:"not null"`
	Path      string       `gorm:"not null"`
	MimeType  string
	Size      int64
}

// IsVerified holds exactly when status is approved.
func (p *VerificationProfile) IsVerified() bool {
	return p.Status == VerificationStatusApproved
}

// HasDocument reports whether a document of the given kind is present.
func (p *VerificationProfile) HasDocument(kind DocumentKind) bool {
	for _, d := range p.Documents {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

// MissingDocuments lists required kinds not yet uploaded, in policy order.
func (p *VerificationProfile) MissingDocuments() []DocumentKind {
	var missing []DocumentKind
	for _, kind := range RequiredDocuments(p.Role) {
		if !p.HasDocument(kind) {
			missing = append(missing, kind)
		}
	}
	return missing
}

// CompletionPercentage derives document-collection progress. Derived only,
// never authoritative: submit re-checks the documents themselves.
func (p *VerificationProfile) CompletionPercentage() int {
	required := RequiredDocuments(p.Role)
	if len(required) == 0 {
		return 0
	}
	present := 0
	for _, kind := range required {
		if p.HasDocument(kind) {
			present++
		}
	}
	return present * 100 / len(required)
}
