package dto

type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content" validate:"required"`
}

type StreamChatRequest struct {
	Messages []ChatMessage `json:"messages" validate:"required,min=1,dive"`
}

type SalaryCoachRequest struct {
	Role            string `json:"role" validate:"required"`
	ExperienceYears int    `json:"experience_years" validate:"min=0,max=60"`
	Location        string `json:"location"`
	CurrentOffer    string `json:"current_offer"`
	Context         string `json:"context"`
}

type SalaryCoachResponse struct {
	Message string `json:"message"`
}
