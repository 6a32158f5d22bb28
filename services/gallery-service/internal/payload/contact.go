package payload

type ContactRequest struct {
	Name      string `json:"name"       validate:"required,max=100"`
	Email     string `json:"email"      validate:"required,email"`
	Phone     string `json:"phone"      validate:"max=30"`
	Message   string `json:"message"    validate:"required,max=5000"`
	ArtworkID string `json:"artwork_id"`
}
