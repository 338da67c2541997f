package auth

// Credentials is the single credential record the dashboard verifies against.
// It is loaded once at startup from the environment and never written back.
type Credentials struct {
	Username     string
	PasswordHash string
}

// Configured reports whether both halves of the record are present.
func (c Credentials) Configured() bool {
	return c.Username != "" && c.PasswordHash != ""
}
