package email

// Provider sends transactional notifications. Sends are best-effort: a
// failed mail must never fail the transaction that triggered it.
type Provider interface {
	SendVerificationApproved(to, name string) error
	SendVerificationRejected(to, name, reason string) error
	SendApplicationAccepted(to, shiftTitle string) error
	SendApplicationRejected(to, shiftTitle string) error
}

// NoopProvider is used when email is disabled in config.
type NoopProvider struct{}

func (NoopProvider) SendVerificationApproved(to, name string) error         { return nil }
func (NoopProvider) SendVerificationRejected(to, name, reason string) error { return nil }
func (NoopProvider) SendApplicationAccepted(to, shiftTitle string) error    { return nil }
func (NoopProvider) SendApplicationRejected(to, shiftTitle string) error    { return nil }
