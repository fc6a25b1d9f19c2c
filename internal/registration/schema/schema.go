// Package schema is the single source of truth for what a valid registrant
// looks like. The same rule set backs both validation passes: the advisory
// pass collects every violation so a form can report an aggregate count, and
// the authoritative pass fails fast with the first blocking message. The two
// passes differ only in aggregation strategy, never in rules.
package schema

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"

	"vofmun/internal/registration/models"
)

// Mode selects the failure-aggregation strategy.
type Mode int

const (
	// CollectAll gathers every violated rule (advisory/client pass).
	CollectAll Mode = iota
	// FailFast stops at the first violated rule (authoritative/server pass).
	FailFast
)

// EssayMinLength is the minimum essay length, counted in raw characters
// including whitespace. No trimming happens before the length check.
const EssayMinLength = 50

// FieldError is one (field key, human-readable message) pair.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Violations is the non-empty collection returned when validation fails.
type Violations []FieldError

// First returns the first violation's message, or "" when empty.
func (v Violations) First() string {
	if len(v) == 0 {
		return ""
	}
	return v[0].Message
}

// Messages joins every violation message, one per rule, space-separated.
func (v Violations) Messages() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Message)
	}
	return strings.Join(parts, " ")
}

// collector accumulates violations honoring the selected mode.
type collector struct {
	mode       Mode
	violations Violations
}

func (c *collector) add(field, message string) {
	c.violations = append(c.violations, FieldError{Field: field, Message: message})
}

// stop reports whether rule evaluation should short-circuit.
func (c *collector) stop() bool {
	return c.mode == FailFast && len(c.violations) > 0
}

// Validate runs the canonical field schema plus the role-conditional
// extension rules against a raw submission. It returns either a normalized
// Registrant or a non-empty set of violations, never both.
func Validate(req models.SignupRequest, mode Mode) (*models.Registrant, Violations) {
	c := &collector{mode: mode}

	validateCommon(req.FormData, c)
	profile := validateRole(req, c)
	payment := validatePayment(req.PaymentConfirmation, c)

	if len(c.violations) > 0 {
		return nil, c.violations
	}

	f := req.FormData
	return &models.Registrant{
		Email:                 strings.TrimSpace(f.Email),
		FirstName:             strings.TrimSpace(f.FirstName),
		LastName:              strings.TrimSpace(f.LastName),
		Phone:                 strings.TrimSpace(f.Phone),
		Nationality:           strings.ToUpper(strings.TrimSpace(f.Nationality)),
		Role:                  models.Role(req.SelectedRole),
		School:                strings.TrimSpace(f.School),
		Grade:                 f.Grade,
		DietaryType:           f.DietaryType,
		DietaryOther:          strings.TrimSpace(f.DietaryOther),
		HasAllergies:          f.HasAllergies,
		AllergiesDetails:      strings.TrimSpace(f.AllergiesDetails),
		EmergencyContactName:  strings.TrimSpace(f.EmergencyContact),
		EmergencyContactPhone: strings.TrimSpace(f.EmergencyPhone),
		AgreeTerms:            f.AgreeTerms,
		AgreePhotos:           f.AgreePhotos,
		Profile:               profile,
		Payment:               payment,
	}, nil
}

func validateCommon(f models.FormData, c *collector) {
	if c.stop() {
		return
	}
	email := strings.TrimSpace(f.Email)
	switch {
	case email == "":
		c.add("email", "Email is required")
	case !govalidator.IsEmail(email) || len(email) > 255:
		c.add("email", "Please enter a valid email address")
	}

	requireNonEmpty(c, "firstName", f.FirstName, "First name is required")
	requireNonEmpty(c, "lastName", f.LastName, "Last name is required")
	requireNonEmpty(c, "phone", f.Phone, "Phone number is required")

	if !c.stop() {
		nationality := strings.TrimSpace(f.Nationality)
		switch {
		case nationality == "":
			c.add("nationality", "Nationality is required")
		case !isCountryCode(nationality):
			c.add("nationality", "Nationality must be a 2-letter country code")
		}
	}

	requireNonEmpty(c, "school", f.School, "School/Institution is required")

	if !c.stop() {
		if f.Grade == "" {
			c.add("grade", "Please select your grade/year")
		} else if !models.ValidGrade(f.Grade) {
			c.add("grade", "Please select a valid grade/year")
		}
	}

	if !c.stop() {
		if f.DietaryType == "" {
			c.add("dietaryType", "Please select your dietary preference")
		} else if !models.ValidDietaryType(f.DietaryType) {
			c.add("dietaryType", "Please select a valid dietary preference")
		}
	}
	if !c.stop() && f.DietaryType == "other" && strings.TrimSpace(f.DietaryOther) == "" {
		c.add("dietaryOther", "Please specify your dietary requirement")
	}

	if !c.stop() && f.HasAllergies != "yes" && f.HasAllergies != "no" {
		c.add("hasAllergies", "Please indicate if you have any allergies")
	}
	if !c.stop() && f.HasAllergies == "yes" && strings.TrimSpace(f.AllergiesDetails) == "" {
		c.add("allergiesDetails", "Please provide details about your allergies")
	}

	requireNonEmpty(c, "emergencyContact", f.EmergencyContact, "Emergency contact name is required")
	requireNonEmpty(c, "emergencyPhone", f.EmergencyPhone, "Emergency contact phone is required")

	if !c.stop() && !f.AgreeTerms {
		c.add("agreeTerms", "You must agree to the terms and conditions")
	}
}

// validateRole enforces the role-payload union: a valid role, exactly the
// matching payload present, and that payload's extension rules satisfied.
func validateRole(req models.SignupRequest, c *collector) models.RolePayload {
	if c.stop() {
		return nil
	}

	role := models.Role(req.SelectedRole)
	if !role.Valid() {
		c.add("roleSelection", "Please select a role to apply for")
		return nil
	}

	if payloadShapeMismatch(req, role) {
		c.add("rolePayload", "Role details do not match the selected role")
		return nil
	}

	switch role {
	case models.RoleDelegate:
		validateDelegate(*req.DelegateData, c)
		if len(c.violations) == 0 {
			p := *req.DelegateData
			return p
		}
	case models.RoleChair:
		validateChair(*req.ChairData, c)
		if len(c.violations) == 0 {
			p := *req.ChairData
			return p
		}
	case models.RoleAdmin:
		validateAdmin(*req.AdminData, c)
		if len(c.violations) == 0 {
			p := *req.AdminData
			p.RelevantExperience = strings.TrimSpace(p.RelevantExperience)
			return p
		}
	}
	return nil
}

// payloadShapeMismatch reports whether the wrong payload slot (or none) is
// populated for the declared role. Extra populated slots are rejected too so
// a delegate submission cannot smuggle a chair payload past validation.
func payloadShapeMismatch(req models.SignupRequest, role models.Role) bool {
	switch role {
	case models.RoleDelegate:
		return req.DelegateData == nil || req.ChairData != nil || req.AdminData != nil
	case models.RoleChair:
		return req.ChairData == nil || req.DelegateData != nil || req.AdminData != nil
	case models.RoleAdmin:
		return req.AdminData == nil || req.DelegateData != nil || req.ChairData != nil
	}
	return true
}

func validateDelegate(p models.DelegateProfile, c *collector) {
	if c.stop() {
		return
	}
	if !p.Experience.Valid() {
		c.add("experience", "Please select your MUN experience level")
	}
	if !c.stop() && p.Committee1 == "" {
		c.add("committee1", "Please select your first committee choice")
	}
	validateCommitteePreferences(p.CommitteePreferences(), c)
}

func validateChair(p models.ChairProfile, c *collector) {
	if c.stop() {
		return
	}
	if len(p.Experiences) == 0 {
		c.add("chairExperiences", "At least one experience is required for chairs")
	} else {
		for i, exp := range p.Experiences {
			if c.stop() {
				return
			}
			if strings.TrimSpace(exp.Conference) == "" ||
				strings.TrimSpace(exp.Position) == "" ||
				strings.TrimSpace(exp.Year) == "" {
				c.add(fmt.Sprintf("chairExperiences[%d]", i), "Each experience needs a conference, position, and year")
			}
		}
	}

	if !c.stop() && p.Committee1 == "" {
		c.add("chairRolePreferences", "Please select your first committee choice")
	}
	validateCommitteePreferences(p.CommitteePreferences(), c)

	if !c.stop() && strings.TrimSpace(p.CrisisBackroomInterest) == "" {
		c.add("chairCrisisBackroomInterest", "Please indicate your interest in the Crisis Backroom Staff")
	}

	validateEssay(c, "chairWhyBestFit", p.WhyBestFit,
		"Please explain why you are the best fit for this role",
		"Please provide at least 50 characters explaining why you are the best fit")
	validateEssay(c, "chairSuccessfulCommittee", p.SuccessfulCommittee,
		"Please share your thoughts on what makes a committee successful",
		"Please provide at least 50 characters on what makes a committee successful")
	validateEssay(c, "chairStrengthWeakness", p.StrengthWeakness,
		"Please describe your strengths and weaknesses as a leader",
		"Please provide at least 50 characters describing your strengths and weaknesses")

	// The crisis essays are required only when the interest flag is exactly
	// "yes". Any other value skips this branch entirely; that asymmetry is
	// intentional.
	if p.CrisisBackroomInterest == "yes" {
		validateEssay(c, "chairCrisisResponse", p.CrisisResponse,
			"Please describe your approach to the crisis response scenario",
			"Please provide at least 50 characters for the crisis response scenario")
		validateEssay(c, "chairAvailability", p.Availability,
			"Please confirm your availability and communication approach",
			"Please provide at least 50 characters describing your availability")
	}
}

func validateAdmin(p models.AdminProfile, c *collector) {
	if c.stop() {
		return
	}
	if strings.TrimSpace(p.RelevantExperience) == "" {
		c.add("adminExperience", "Relevant experience is required")
	}
	if !c.stop() && p.PreviousAdmin != "yes" && p.PreviousAdmin != "no" {
		c.add("previousAdmin", "Please indicate if you have been an admin before")
	}
	if !c.stop() && p.UnderstandsRole != "yes" && p.UnderstandsRole != "no" {
		c.add("understandsRole", "Please confirm your understanding of the role and availability")
	}
}

// validateCommitteePreferences checks slot values against the committee
// enumeration and rejects pairwise duplicates among set slots. Unset slots
// never count as duplicates of each other.
func validateCommitteePreferences(prefs [3]string, c *collector) {
	for i, code := range prefs {
		if c.stop() {
			return
		}
		if code != "" && !models.ValidCommittee(code) {
			c.add(fmt.Sprintf("committee%d", i+1), "Invalid committee selection")
		}
	}

	if c.stop() {
		return
	}
	for i := 0; i < len(prefs); i++ {
		for j := i + 1; j < len(prefs); j++ {
			if prefs[i] != "" && prefs[i] == prefs[j] {
				c.add("committees", "Cannot select the same committee multiple times")
				return
			}
		}
	}
}

func validatePayment(p *models.PaymentConfirmationRequest, c *collector) models.PaymentConfirmation {
	if c.stop() {
		return models.PaymentConfirmation{}
	}
	if p == nil {
		c.add("paymentProof", "Please upload proof of payment before submitting")
		return models.PaymentConfirmation{}
	}

	requireNonEmpty(c, "paymentFullName", p.FullName, "Please enter the payer's full name")

	if !c.stop() && !models.Role(p.Role).Valid() {
		c.add("paymentRole", "Please select the role associated with this payment")
	}

	if !c.stop() && !strings.HasPrefix(p.MimeType, "image/") {
		c.add("paymentProof", "Please upload an image file (PNG, JPG, or HEIC).")
	}

	var data []byte
	if !c.stop() {
		var ok bool
		data, ok = decodeDataURL(p.DataURL)
		if !ok {
			c.add("paymentProof", "Invalid payment proof payload received")
		}
	}

	if len(c.violations) > 0 {
		return models.PaymentConfirmation{}
	}

	fileName := strings.TrimSpace(p.FileName)
	if fileName == "" {
		fileName = "payment-proof"
	}
	return models.PaymentConfirmation{
		FullName: strings.TrimSpace(p.FullName),
		Role:     models.Role(p.Role),
		FileName: fileName,
		MimeType: p.MimeType,
		Data:     data,
	}
}

// validateEssay applies the required-then-minimum-length policy: emptiness is
// judged on the trimmed value, but the length floor counts raw characters.
func validateEssay(c *collector, field, value, requiredMsg, lengthMsg string) {
	if c.stop() {
		return
	}
	if strings.TrimSpace(value) == "" {
		c.add(field, requiredMsg)
		return
	}
	if utf8.RuneCountInString(value) < EssayMinLength {
		c.add(field, lengthMsg)
	}
}

func requireNonEmpty(c *collector, field, value, message string) {
	if c.stop() {
		return
	}
	if strings.TrimSpace(value) == "" {
		c.add(field, message)
	}
}

func isCountryCode(v string) bool {
	if len(v) != 2 {
		return false
	}
	for _, r := range v {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// decodeDataURL accepts a "data:<mime>;base64,<payload>" string and returns
// the decoded payload.
func decodeDataURL(dataURL string) ([]byte, bool) {
	if !strings.HasPrefix(dataURL, "data:") {
		return nil, false
	}
	idx := strings.Index(dataURL, ";base64,")
	if idx < 0 {
		return nil, false
	}
	payload := dataURL[idx+len(";base64,"):]
	if payload == "" {
		return nil, false
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}
