package models

// Membership roles. The remote API knows exactly these two.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// ValidRole reports whether r is one of the two membership roles.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleMember
}

// Member is one membership entry of a project.
type Member struct {
	DID      string `json:"did"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// ProjectSummary is a project-list row. The list view carries the
// caller's role under the JSON key "role".
type ProjectSummary struct {
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name"`
	CallerRole  string `json:"role"`
	CreatorDID  string `json:"creator_did"`
}

// Project is the detail view of a project. The detail endpoint spells
// the caller's role "user_role"; both wire spellings converge on
// CallerRole so authorization display has a single source.
type Project struct {
	ProjectID   string   `json:"project_id"`
	ProjectName string   `json:"project_name"`
	CreatorDID  string   `json:"creator_did"`
	CallerRole  string   `json:"user_role"`
	Members     []Member `json:"members"`
}

// CanManage reports whether the caller may mutate this project. It only
// governs which affordances render; the server is the authority.
func (p Project) CanManage() bool { return p.CallerRole == RoleAdmin }

// IsCreator reports whether did created the project. The creator's
// membership entry is immutable regardless of caller role.
func (p Project) IsCreator(did string) bool { return did != "" && did == p.CreatorDID }

// HasMember reports whether did is already a member.
func (p Project) HasMember(did string) bool {
	for _, m := range p.Members {
		if m.DID == did {
			return true
		}
	}
	return false
}
