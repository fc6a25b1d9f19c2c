// Package models defines the registrant aggregate and its role payloads.
package models

// Role is the applicant track selected once at submission.
type Role string

const (
	RoleDelegate Role = "delegate"
	RoleChair    Role = "chair"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleDelegate, RoleChair, RoleAdmin:
		return true
	}
	return false
}

// ExperienceTier is the delegate's prior MUN experience level.
type ExperienceTier string

const (
	ExperienceNone         ExperienceTier = "none"
	ExperienceBeginner     ExperienceTier = "beginner"
	ExperienceIntermediate ExperienceTier = "intermediate"
	ExperienceAdvanced     ExperienceTier = "advanced"
)

func (e ExperienceTier) Valid() bool {
	switch e {
	case ExperienceNone, ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return true
	}
	return false
}

// Committees is the closed set of committee codes a preference may name.
var Committees = []string{"ga1", "unodc", "ecosoc", "who", "icj", "unsc"}

// ValidCommittee reports whether code belongs to the committee enumeration.
func ValidCommittee(code string) bool {
	for _, c := range Committees {
		if c == code {
			return true
		}
	}
	return false
}

// DietaryTypes is the closed set of dietary categories; "other" requires the
// free-text detail to be populated.
var DietaryTypes = []string{"vegetarian", "non-vegetarian", "other"}

func ValidDietaryType(v string) bool {
	for _, d := range DietaryTypes {
		if d == v {
			return true
		}
	}
	return false
}

// Grades is the closed set of grade/year selections.
var Grades = []string{"6", "7", "8", "9", "10", "11", "12", "university"}

func ValidGrade(v string) bool {
	for _, g := range Grades {
		if g == v {
			return true
		}
	}
	return false
}

// RolePayload is the tagged variant attached to a Registrant. Exactly one
// concrete profile exists per registrant and its shape must match the
// declared role; modeling this as an interface (rather than three optional
// fields) makes an inconsistent pairing unrepresentable after validation.
type RolePayload interface {
	Role() Role
}

// DelegateProfile is the delegate-specific payload.
type DelegateProfile struct {
	Experience ExperienceTier `json:"experience"`
	Committee1 string         `json:"committee1,omitempty"`
	Committee2 string         `json:"committee2,omitempty"`
	Committee3 string         `json:"committee3,omitempty"`
}

func (DelegateProfile) Role() Role { return RoleDelegate }

// CommitteePreferences returns the three preference slots in rank order.
// Unset slots are empty strings.
func (p DelegateProfile) CommitteePreferences() [3]string {
	return [3]string{p.Committee1, p.Committee2, p.Committee3}
}

// ChairExperience is one prior chairing/conference entry.
type ChairExperience struct {
	Conference  string `json:"conference"`
	Position    string `json:"position"`
	Year        string `json:"year"`
	Description string `json:"description,omitempty"`
}

// ChairProfile is the chair-specific payload.
//
// Invariants:
//   - Experiences holds at least one entry
//   - Committee preferences contain no duplicates among set slots
//   - The three essays hold at least 50 characters each, counted raw
//   - CrisisResponse and Availability are required (same 50-char floor)
//     only when CrisisBackroomInterest is exactly "yes"
type ChairProfile struct {
	Experiences            []ChairExperience `json:"experiences"`
	Committee1             string            `json:"committee1,omitempty"`
	Committee2             string            `json:"committee2,omitempty"`
	Committee3             string            `json:"committee3,omitempty"`
	CrisisBackroomInterest string            `json:"crisisBackroomInterest,omitempty"`
	WhyBestFit             string            `json:"whyBestFit"`
	SuccessfulCommittee    string            `json:"successfulCommittee"`
	StrengthWeakness       string            `json:"strengthWeakness"`
	CrisisResponse         string            `json:"crisisResponse,omitempty"`
	Availability           string            `json:"availability,omitempty"`
}

func (ChairProfile) Role() Role { return RoleChair }

func (p ChairProfile) CommitteePreferences() [3]string {
	return [3]string{p.Committee1, p.Committee2, p.Committee3}
}

// AdminExperience is one prior organizational role entry.
type AdminExperience struct {
	Role         string `json:"role"`
	Organization string `json:"organization"`
	Year         string `json:"year"`
	Description  string `json:"description,omitempty"`
}

// AdminProfile is the admin-specific payload.
type AdminProfile struct {
	Experiences        []AdminExperience `json:"experiences,omitempty"`
	Skills             []string          `json:"skills,omitempty"`
	WhyAdmin           string            `json:"whyAdmin,omitempty"`
	RelevantExperience string            `json:"relevantExperience"`
	PreviousAdmin      string            `json:"previousAdmin"`
	UnderstandsRole    string            `json:"understandsRole"`
}

func (AdminProfile) Role() Role { return RoleAdmin }

// PaymentConfirmation is the payer identity plus the proof-of-payment image
// attached at submission time. Registration cannot be persisted without it.
type PaymentConfirmation struct {
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	// Data holds the decoded image bytes once validated.
	Data []byte `json:"-"`
}

// Registrant is one validated signup record.
//
// Invariants:
//   - Email is unique (enforced by the storage layer's constraint)
//   - DietaryType == "other" implies DietaryOther is non-empty after trimming
//   - HasAllergies == "yes" implies AllergiesDetails is non-empty after trimming
//   - AgreeTerms is true
//   - Profile.Role() == Role
type Registrant struct {
	Email                 string
	FirstName             string
	LastName              string
	Phone                 string
	Nationality           string
	Role                  Role
	School                string
	Grade                 string
	DietaryType           string
	DietaryOther          string
	HasAllergies          string
	AllergiesDetails      string
	EmergencyContactName  string
	EmergencyContactPhone string
	AgreeTerms            bool
	AgreePhotos           bool
	Profile               RolePayload
	Payment               PaymentConfirmation
}
