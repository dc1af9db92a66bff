package models

// Identity is the subset of token claims used for display. It is never
// an authorization input: the remote API re-checks every call.
type Identity struct {
	DID      string `json:"did"`
	Username string `json:"username"`
}

// Profile mirrors the remote profile resource.
type Profile struct {
	Username       string   `json:"username"`
	Email          string   `json:"email"`
	Bio            string   `json:"bio"`
	ProfessionTags []string `json:"profession_tags"`
}

// UserSummary is a single user-search result row.
type UserSummary struct {
	DID            string   `json:"did"`
	Username       string   `json:"username"`
	Email          string   `json:"email"`
	ProfessionTags []string `json:"profession_tags,omitempty"`
}
