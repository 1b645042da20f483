package request

type RegisterEventRequest struct {
	ParticipantName     string `json:"participant_name" validate:"required,min=2,max=50"`
	Email               string `json:"email" validate:"required,email"`
	Phone               string `json:"phone" validate:"required,min=10,max=15"`
	Participants        int    `json:"participants" validate:"required,min=1"`
	SpecialRequirements string `json:"special_requirements,omitempty" validate:"omitempty,max=500"`
}

type ConfirmRegistrationRequest struct {
	Method        string  `json:"method" validate:"required,oneof=card upi netbanking"`
	TransactionID *string `json:"transaction_id,omitempty"`
}
