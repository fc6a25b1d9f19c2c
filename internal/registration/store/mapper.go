package store

import (
	"encoding/json"
	"fmt"

	"vofmun/internal/registration/models"
)

// ToUserRow translates a validated registrant into its row shape. It is a
// pure mapping: no validation, no defaulting beyond the initial statuses,
// and no timestamps. The role payload lands in exactly one of the three
// JSON slots; the other two stay empty.
func ToUserRow(reg *models.Registrant) (UserRow, error) {
	row := UserRow{
		Email:                 reg.Email,
		FirstName:             reg.FirstName,
		LastName:              reg.LastName,
		Phone:                 reg.Phone,
		Nationality:           reg.Nationality,
		Role:                  string(reg.Role),
		School:                reg.School,
		Grade:                 reg.Grade,
		DietaryType:           reg.DietaryType,
		DietaryOther:          reg.DietaryOther,
		HasAllergies:          reg.HasAllergies,
		AllergiesDetails:      reg.AllergiesDetails,
		EmergencyContactName:  reg.EmergencyContactName,
		EmergencyContactPhone: reg.EmergencyContactPhone,
		AgreeTerms:            reg.AgreeTerms,
		AgreePhotos:           reg.AgreePhotos,
		RegistrationStatus:    "pending",
		PaymentStatus:         "unpaid",
	}

	payload, err := json.Marshal(reg.Profile)
	if err != nil {
		return UserRow{}, fmt.Errorf("marshal role payload: %w", err)
	}
	switch reg.Role {
	case models.RoleDelegate:
		row.DelegateData = payload
	case models.RoleChair:
		row.ChairData = payload
	case models.RoleAdmin:
		row.AdminData = payload
	default:
		return UserRow{}, fmt.Errorf("unmapped role %q", reg.Role)
	}
	return row, nil
}
