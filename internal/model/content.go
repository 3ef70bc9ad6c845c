package model

type Event struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Date        string   `json:"date"`
	Location    string   `json:"location,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type Project struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	DescriptionShort string   `json:"description_short"`
	DescriptionLong  string   `json:"description_long,omitempty"`
	TechStack        []string `json:"tech_stack,omitempty"`
	GithubLink       string   `json:"github_link,omitempty"`
	DeploymentLink   string   `json:"deployment_link,omitempty"`
	Status           string   `json:"status,omitempty"`
}
