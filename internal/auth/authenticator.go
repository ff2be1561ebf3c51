package auth

import "context"

// Identity is what an identity provider knows about a signed-in person.
type Identity struct {
	// ExternalID is the provider's stable subject.
	ExternalID string
	// Username is the display name.
	Username string
}

// IdentityProvider delegates sign-in to an external service.
// This abstraction allows swapping providers (Google, GitHub, OIDC) without
// changing the HTTP handlers.
type IdentityProvider interface {
	// Name is the provider's route segment, e.g. "google".
	Name() string

	// AuthCodeURL returns the consent page URL carrying state.
	AuthCodeURL(state string) string

	// Identify exchanges an authorization code for the user's identity.
	Identify(ctx context.Context, code string) (*Identity, error)
}
