package models

// SignupRequest is the wire shape of a registration submission:
// { formData, selectedRole, delegateData|chairData|adminData, paymentConfirmation }.
// Exactly one role payload field may be set and it must match SelectedRole;
// the schema enforces this before a Registrant is built.
type SignupRequest struct {
	FormData            FormData                    `json:"formData"`
	SelectedRole        string                      `json:"selectedRole"`
	DelegateData        *DelegateProfile            `json:"delegateData"`
	ChairData           *ChairProfile               `json:"chairData"`
	AdminData           *AdminProfile               `json:"adminData"`
	PaymentConfirmation *PaymentConfirmationRequest `json:"paymentConfirmation"`
}

// FormData carries the common (role-independent) form fields as raw strings.
type FormData struct {
	Email            string `json:"email"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Phone            string `json:"phone"`
	Nationality      string `json:"nationality"`
	School           string `json:"school"`
	Grade            string `json:"grade"`
	DietaryType      string `json:"dietaryType"`
	DietaryOther     string `json:"dietaryOther"`
	HasAllergies     string `json:"hasAllergies"`
	AllergiesDetails string `json:"allergiesDetails"`
	EmergencyContact string `json:"emergencyContact"`
	EmergencyPhone   string `json:"emergencyPhone"`
	AgreeTerms       bool   `json:"agreeTerms"`
	AgreePhotos      bool   `json:"agreePhotos"`
}

// PaymentConfirmationRequest is the wire form of the payment proof: payer
// identity plus the image as a data URL.
type PaymentConfirmationRequest struct {
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	DataURL  string `json:"dataUrl"`
}
