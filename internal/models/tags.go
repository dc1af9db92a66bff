package models

// Limits on the editable profile fields.
const (
	MaxBioLen       = 500 // runes
	MaxTags         = 5
	MaxCustomTagLen = 50 // runes, after trimming
)

// ProfessionTags maps predefined tag ids to display labels. Profiles
// may also carry free-form custom tags outside this catalog.
var ProfessionTags = map[string]string{
	"frontend-developer":  "Frontend Developer",
	"backend-developer":   "Backend Developer",
	"fullstack-developer": "Fullstack Developer",
	"mobile-developer":    "Mobile Developer",
	"devops-engineer":     "DevOps Engineer",
	"data-engineer":       "Data Engineer",
	"ml-engineer":         "ML Engineer",
	"qa-engineer":         "QA Engineer",

	"ui-designer":      "UI Designer",
	"ux-designer":      "UX Designer",
	"product-designer": "Product Designer",
	"graphic-designer": "Graphic Designer",

	"product-manager": "Product Manager",
	"project-manager": "Project Manager",
	"scrum-master":    "Scrum Master",

	"business-analyst": "Business Analyst",
	"entrepreneur":     "Entrepreneur",
	"consultant":       "Consultant",

	"researcher": "Researcher",
	"writer":     "Writer",
	"marketer":   "Marketer",
}

// TagCategory groups predefined tags for rendering.
type TagCategory struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

// TagCategories lists the catalog in display order.
var TagCategories = []TagCategory{
	{Name: "Engineering", Tags: []string{
		"frontend-developer", "backend-developer", "fullstack-developer",
		"mobile-developer", "devops-engineer", "data-engineer",
		"ml-engineer", "qa-engineer",
	}},
	{Name: "Design", Tags: []string{
		"ui-designer", "ux-designer", "product-designer", "graphic-designer",
	}},
	{Name: "Product & Management", Tags: []string{
		"product-manager", "project-manager", "scrum-master",
	}},
	{Name: "Business", Tags: []string{
		"business-analyst", "entrepreneur", "consultant",
	}},
	{Name: "Other", Tags: []string{
		"researcher", "writer", "marketer",
	}},
}
