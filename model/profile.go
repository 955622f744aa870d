package model

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/islandguide/admin-api/jsonx"
)

// ProfileRecord is the flat profiles row. The is_admin flag gates every
// admin route. The password hash never leaves the store layer; it is
// excluded from JSON on purpose.
type ProfileRecord struct {
	Id              string          `json:"id"`
	Name            string          `json:"name"`
	Username        string          `json:"username"`
	Email           string          `json:"email"`
	IsAdmin         bool            `json:"is_admin"`
	Bio             string          `json:"bio"`
	Location        string          `json:"location"`
	Interests       []string        `json:"interests"`
	FavoritePlaces  []string        `json:"favorite_places"`
	Preferences     json.RawMessage `json:"preferences"`
	SocialLinks     json.RawMessage `json:"social_links"`
	PrivacySettings json.RawMessage `json:"privacy_settings"`
	Notifications   json.RawMessage `json:"notifications"`
	PaymentMethods  json.RawMessage `json:"payment_methods"`
	EventsAttended  int             `json:"events_attended"`
	JoinDate        string          `json:"join_date"`
	CreatedAt       time.Time       `json:"created_at"`
	PasswordHash    string          `json:"-"`
}

type ProfilePreferences struct {
	Accessibility     map[string]bool `json:"accessibility"`
	EventCategories   []string        `json:"eventCategories"`
	GuideCategories   []string        `json:"guideCategories"`
	PartnerCategories []string        `json:"partnerCategories"`
}

type ProfileSocialLinks struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
	LineId    string `json:"lineId"`
}

type PrivacySettings struct {
	ProfileVisibility  string `json:"profileVisibility"`
	ShowLocation       bool   `json:"showLocation"`
	ShowInterests      bool   `json:"showInterests"`
	ShowAttendedEvents bool   `json:"showAttendedEvents"`
}

type NotificationSettings struct {
	Events        bool `json:"events"`
	Messages      bool `json:"messages"`
	Updates       bool `json:"updates"`
	PartnersDeals bool `json:"partnersDeals"`
	PushEnabled   bool `json:"pushEnabled"`
	EmailDigest   bool `json:"emailDigest"`
}

type PaymentCard struct {
	Type       string `json:"type"`
	LastFour   string `json:"lastFour"`
	ExpiryDate string `json:"expiryDate"`
}

type PaymentMethods struct {
	Cards            []PaymentCard `json:"cards"`
	MobilePay        bool          `json:"mobilePay"`
	Cryptocurrencies []string      `json:"cryptocurrencies"`
}

// ProfileViewModel is the edit shape of a user profile.
type ProfileViewModel struct {
	Id              string               `json:"id"`
	Name            string               `json:"name" validate:"max=200"`
	Username        string               `json:"username" validate:"omitempty,min=2,max=60"`
	Email           string               `json:"email" validate:"omitempty,email"`
	IsAdmin         bool                 `json:"isAdmin"`
	Bio             string               `json:"bio"`
	Location        string               `json:"location"`
	Interests       []string             `json:"interests"`
	FavoritePlaces  []string             `json:"favoritePlaces"`
	Preferences     ProfilePreferences   `json:"preferences"`
	SocialLinks     ProfileSocialLinks   `json:"socialLinks"`
	PrivacySettings PrivacySettings      `json:"privacySettings"`
	Notifications   NotificationSettings `json:"notifications"`
	PaymentMethods  PaymentMethods       `json:"paymentMethods"`
	EventsAttended  int                  `json:"eventsAttended"`
	JoinDate        string               `json:"joinDate"`
}

// ProfileFromRecord converts a stored profile row into the edit view
// model with defaults applied.
func ProfileFromRecord(r ProfileRecord, log *zerolog.Logger) ProfileViewModel {
	vm := ProfileViewModel{
		Id:              r.Id,
		Name:            r.Name,
		Username:        r.Username,
		Email:           r.Email,
		IsAdmin:         r.IsAdmin,
		Bio:             r.Bio,
		Location:        r.Location,
		Interests:       r.Interests,
		FavoritePlaces:  r.FavoritePlaces,
		Preferences:     jsonx.Decode(r.Preferences, ProfilePreferences{}, log, "preferences"),
		SocialLinks:     jsonx.Decode(r.SocialLinks, ProfileSocialLinks{}, log, "social_links"),
		PrivacySettings: jsonx.Decode(r.PrivacySettings, PrivacySettings{}, log, "privacy_settings"),
		Notifications:   jsonx.Decode(r.Notifications, NotificationSettings{}, log, "notifications"),
		PaymentMethods:  jsonx.Decode(r.PaymentMethods, PaymentMethods{}, log, "payment_methods"),
		EventsAttended:  r.EventsAttended,
		JoinDate:        r.JoinDate,
	}

	if vm.Interests == nil {
		vm.Interests = []string{}
	}
	if vm.FavoritePlaces == nil {
		vm.FavoritePlaces = []string{}
	}
	if vm.Preferences.Accessibility == nil {
		vm.Preferences.Accessibility = map[string]bool{}
	}
	if vm.Preferences.EventCategories == nil {
		vm.Preferences.EventCategories = []string{}
	}
	if vm.Preferences.GuideCategories == nil {
		vm.Preferences.GuideCategories = []string{}
	}
	if vm.Preferences.PartnerCategories == nil {
		vm.Preferences.PartnerCategories = []string{}
	}
	if vm.PaymentMethods.Cards == nil {
		vm.PaymentMethods.Cards = []PaymentCard{}
	}
	if vm.PaymentMethods.Cryptocurrencies == nil {
		vm.PaymentMethods.Cryptocurrencies = []string{}
	}
	return vm
}

// ProfilePatch carries a partial profile edit. is_admin is deliberately
// not editable through the profile form path; promoting a user is a
// separate explicit call.
type ProfilePatch struct {
	Name            *string               `json:"name"`
	Username        *string               `json:"username"`
	Bio             *string               `json:"bio"`
	Location        *string               `json:"location"`
	Interests       *[]string             `json:"interests"`
	FavoritePlaces  *[]string             `json:"favoritePlaces"`
	Preferences     *ProfilePreferences   `json:"preferences"`
	SocialLinks     *ProfileSocialLinks   `json:"socialLinks"`
	PrivacySettings *PrivacySettings      `json:"privacySettings"`
	Notifications   *NotificationSettings `json:"notifications"`
	PaymentMethods  *PaymentMethods       `json:"paymentMethods"`
}

// Columns returns column assignments for the fields present in the patch.
func (p ProfilePatch) Columns() map[string]any {
	cols := map[string]any{}

	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Username != nil {
		cols["username"] = *p.Username
	}
	if p.Bio != nil {
		cols["bio"] = *p.Bio
	}
	if p.Location != nil {
		cols["location"] = *p.Location
	}
	if p.Interests != nil {
		cols["interests"] = *p.Interests
	}
	if p.FavoritePlaces != nil {
		cols["favorite_places"] = *p.FavoritePlaces
	}
	if p.Preferences != nil {
		data, _ := json.Marshal(p.Preferences)
		cols["preferences"] = data
	}
	if p.SocialLinks != nil {
		data, _ := json.Marshal(p.SocialLinks)
		cols["social_links"] = data
	}
	if p.PrivacySettings != nil {
		data, _ := json.Marshal(p.PrivacySettings)
		cols["privacy_settings"] = data
	}
	if p.Notifications != nil {
		data, _ := json.Marshal(p.Notifications)
		cols["notifications"] = data
	}
	if p.PaymentMethods != nil {
		data, _ := json.Marshal(p.PaymentMethods)
		cols["payment_methods"] = data
	}
	return cols
}
