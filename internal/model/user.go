package model

// User is the member record the backend returns on login and from the
// profile and team endpoints.
type User struct {
	ID            string   `json:"id"`
	Email         string   `json:"email"`
	Name          string   `json:"name"`
	Role          Role     `json:"role,omitempty"`
	Domain        string   `json:"domain,omitempty"`
	Batch         string   `json:"batch,omitempty"`
	Skills        []string `json:"skills,omitempty"`
	GithubLink    string   `json:"github_link,omitempty"`
	LinkedinLink  string   `json:"linkedin_link,omitempty"`
	InstagramLink string   `json:"instagram_link,omitempty"`
	Picture       string   `json:"picture,omitempty"`
}

// ProfileUpdate is a partial profile change for PATCH /profile/. Nil fields
// are left untouched by the backend.
type ProfileUpdate struct {
	Name          *string   `json:"name,omitempty"`
	Batch         *string   `json:"batch,omitempty"`
	Skills        *[]string `json:"skills,omitempty"`
	GithubLink    *string   `json:"github_link,omitempty"`
	LinkedinLink  *string   `json:"linkedin_link,omitempty"`
	InstagramLink *string   `json:"instagram_link,omitempty"`
}
