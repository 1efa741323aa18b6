package settings

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ContactMapping maps contact-card fields to metadata field names. Zero
// values fall back to the conventional labels used by the vault documents.
type ContactMapping struct {
	Name       string            `json:"name,omitempty"`
	Email      string            `json:"email,omitempty"`
	Phone      string            `json:"phone,omitempty"`
	Mobile     string            `json:"mobile,omitempty"`
	Additional map[string]string `json:"additional,omitempty"`
}

// EmailField returns the metadata field carrying the email address.
func (m ContactMapping) EmailField() string {
	if m.Email != "" {
		return m.Email
	}
	return "Email"
}

// PhoneField returns the metadata field carrying the landline number.
func (m ContactMapping) PhoneField() string {
	if m.Phone != "" {
		return m.Phone
	}
	return "Téléphone"
}

// MobileField returns the metadata field carrying the mobile number.
func (m ContactMapping) MobileField() string {
	if m.Mobile != "" {
		return m.Mobile
	}
	return "Portable"
}

// CalendarMapping maps whole-document calendar events to metadata fields.
type CalendarMapping struct {
	Title       string `json:"title,omitempty"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}

// DateField returns the metadata field carrying the event date.
func (m CalendarMapping) DateField() string {
	if m.Date != "" {
		return m.Date
	}
	return "Date"
}

// DescriptionField returns the metadata field carrying the description.
func (m CalendarMapping) DescriptionField() string {
	if m.Description != "" {
		return m.Description
	}
	return "Description"
}

// LocationField returns the metadata field carrying the location.
func (m CalendarMapping) LocationField() string {
	if m.Location != "" {
		return m.Location
	}
	return "Lieu"
}

// ContactConfig routes matching documents into one address book.
type ContactConfig struct {
	ID             string            `json:"id"`
	Enabled        bool              `json:"enabled"`
	UserID         string            `json:"user_id"`
	AddressBook    string            `json:"addressbook,omitempty"`
	MetadataFilter map[string]string `json:"metadata_filter,omitempty"`
}

// Validate reports whether the config is complete enough to persist.
func (c ContactConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Required),
		validation.Field(&c.UserID, validation.Required),
	)
}

// CalendarConfig expands one array property of matching documents into
// calendar events, one per element.
type CalendarConfig struct {
	ID                string            `json:"id"`
	Enabled           bool              `json:"enabled"`
	UserID            string            `json:"user_id"`
	Calendar          string            `json:"calendar,omitempty"`
	ArrayProperty     string            `json:"array_property"`
	DateField         string            `json:"date_field,omitempty"`
	TitleFormat       string            `json:"title_format,omitempty"`
	IDFormat          string            `json:"id_format,omitempty"`
	DescriptionFields []string          `json:"description_fields,omitempty"`
	LocationField     string            `json:"location_field,omitempty"`
	AssignedField     string            `json:"assigned_field,omitempty"`
	MetadataFilter    map[string]string `json:"metadata_filter,omitempty"`
}

// Validate reports whether the config is complete enough to persist.
func (c CalendarConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Required),
		validation.Field(&c.UserID, validation.Required),
		validation.Field(&c.ArrayProperty, validation.Required),
	)
}

// EffectiveDateField returns the per-item date field, defaulting to "date".
func (c CalendarConfig) EffectiveDateField() string {
	if c.DateField != "" {
		return c.DateField
	}
	return "date"
}

// EffectiveTitleFormat returns the title template, defaulting to the bare
// date placeholder.
func (c CalendarConfig) EffectiveTitleFormat() string {
	if c.TitleFormat != "" {
		return c.TitleFormat
	}
	return "{" + c.EffectiveDateField() + "}"
}

// EffectiveIDFormat returns the event id template, defaulting to an
// index-derived id.
func (c CalendarConfig) EffectiveIDFormat() string {
	if c.IDFormat != "" {
		return c.IDFormat
	}
	return "event_{index}"
}

// EffectiveLocationField returns the location source field, defaulting to
// "lieu".
func (c CalendarConfig) EffectiveLocationField() string {
	if c.LocationField != "" {
		return c.LocationField
	}
	return "lieu"
}

// EffectiveAssignedField returns the responsible-party source field,
// defaulting to "assignés".
func (c CalendarConfig) EffectiveAssignedField() string {
	if c.AssignedField != "" {
		return c.AssignedField
	}
	return "assignés"
}
