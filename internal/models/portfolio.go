package models

type ProjectCard struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	TechStack   string `json:"tech_stack"`
}

type Portfolio struct {
	Name     string        `json:"name"`
	Role     string        `json:"role"`
	Bio      string        `json:"bio"`
	Email    string        `json:"email"`
	LinkedIn string        `json:"linkedin"`
	GitHub   string        `json:"github"`
	Projects []ProjectCard `json:"projects"`
	Year     int           `json:"year"`
}
