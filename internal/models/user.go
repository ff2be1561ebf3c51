package models

// User represents a signed-in identity.
//
// Users are owned by the identity provider: the system only records the
// provider's stable subject and a display name.
type User struct {
	// ID is the store-assigned identifier for the user.
	ID int64

	// Username is the display name reported by the identity provider.
	Username string

	// ExternalID is the identity provider's stable subject for this user
	// (e.g. the Google account id). Unique across users.
	ExternalID string
}
