package model

type Severity string

const (
	SeverityDefault     Severity = "default"
	SeverityDestructive Severity = "destructive"
)

// Notification is a transient message surfaced to the user.
type Notification struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// Identity is the authenticated user as seen by the upload workspace.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
