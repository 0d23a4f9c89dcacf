package dto

type LearningResource struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
}

type SearchResourcesResponse struct {
	Query     string             `json:"query"`
	Resources []LearningResource `json:"resources"`
}
