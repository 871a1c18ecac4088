package forms

import (
	"strings"

	"github.com/spentcli/spent/internal/api"
	"github.com/spentcli/spent/internal/model"
)

// ProfileInput is the raw profile form state. Empty fields are left out of
// the update, matching the backend's partial-update contract.
type ProfileInput struct {
	Username string
	Email    string
	Phone    string
}

// Validate checks the fields that are actually set.
func (in ProfileInput) Validate() Errors {
	errs := Errors{}

	if in.Username != "" && len(strings.TrimSpace(in.Username)) < 3 {
		errs["username"] = "Username must be at least 3 characters"
	}

	if in.Email != "" {
		at := strings.Index(in.Email, "@")
		if at <= 0 || at == len(in.Email)-1 || !strings.Contains(in.Email[at:], ".") {
			errs["email"] = "Email must be a valid address"
		}
	}

	return errs
}

// Update converts the form into a partial profile update.
func (in ProfileInput) Update() api.ProfileUpdate {
	update := api.ProfileUpdate{
		Username: strings.TrimSpace(in.Username),
		Email:    strings.TrimSpace(in.Email),
	}
	if in.Phone != "" {
		update.Profile = &model.Profile{Phone: in.Phone}
	}
	return update
}
