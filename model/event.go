package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/islandguide/admin-api/jsonx"
)

// EventRecord is the flat row shape the events table persists. The
// facilities and tickets columns are JSON and may arrive as a parsed
// object, a serialized string or null depending on which client wrote
// them, so they stay raw until the mapper decodes them.
type EventRecord struct {
	Id                      string          `json:"id"`
	Title                   string          `json:"title"`
	Category                string          `json:"category"`
	Image                   string          `json:"image"`
	Time                    string          `json:"time"`
	Location                string          `json:"location"`
	Price                   string          `json:"price"`
	Description             string          `json:"description"`
	Latitude                float64         `json:"latitude"`
	Longitude               float64         `json:"longitude"`
	OrganizerName           string          `json:"organizer_name"`
	OrganizerContactEmail   string          `json:"organizer_contact_email"`
	OrganizerContactPhone   string          `json:"organizer_contact_phone"`
	OrganizerWebsite        string          `json:"organizer_website"`
	RecurrencePattern       string          `json:"recurrence_pattern"`
	RecurrenceCustomPattern string          `json:"recurrence_custom_pattern"`
	RecurrenceEndDate       string          `json:"recurrence_end_date"`
	Duration                string          `json:"duration"`
	Tags                    []string        `json:"tags"`
	Capacity                int             `json:"capacity"`
	Facilities              json.RawMessage `json:"facilities"`
	Tickets                 json.RawMessage `json:"tickets"`
	IsSponsored             bool            `json:"is_sponsored"`
	SponsorEndDate          string          `json:"sponsor_end_date"`
	AttendeeCount           int             `json:"attendee_count"`
	Rating                  float64         `json:"rating"`
	Reviews                 int             `json:"reviews"`
	Day                     *int            `json:"day"`
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
}

// Coordinates pairs the flat latitude/longitude columns for editing.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Organizer gathers the four flat organizer_* columns.
type Organizer struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone string `json:"contactPhone"`
	Website      string `json:"website" validate:"omitempty,url"`
}

// Recurrence pattern values accepted by the edit form.
const (
	RecurrenceNone    = "none"
	RecurrenceDaily   = "daily"
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
	RecurrenceCustom  = "custom"
)

type Recurrence struct {
	Pattern       string `json:"pattern" validate:"omitempty,recurrence"`
	CustomPattern string `json:"customPattern"`
	EndDate       string `json:"endDate"`
}

// EventFacilities is the fixed 8-flag amenity map stored in the
// facilities column.
type EventFacilities struct {
	Parking       bool `json:"parking"`
	Atm           bool `json:"atm"`
	FoodAvailable bool `json:"foodAvailable"`
	Toilets       bool `json:"toilets"`
	Wheelchair    bool `json:"wheelchair"`
	Wifi          bool `json:"wifi"`
	PetFriendly   bool `json:"petFriendly"`
	ChildFriendly bool `json:"childFriendly"`
}

type TicketType struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

type EventTickets struct {
	Url            string       `json:"url" validate:"omitempty,url"`
	AvailableCount int          `json:"availableCount" validate:"gte=0"`
	Types          []TicketType `json:"types"`
}

// EventViewModel is the nested camelCase shape the edit form binds to.
// Every key is always defined: missing strings resolve to "", numerics to
// 0, booleans to false and lists to empty slices, so a sparse row never
// crashes the form.
type EventViewModel struct {
	Id             string          `json:"id"`
	Title          string          `json:"title" validate:"required,min=3,max=200"`
	Category       string          `json:"category" validate:"required"`
	Image          string          `json:"image" validate:"omitempty,url"`
	Time           string          `json:"time" validate:"required"`
	Location       string          `json:"location"`
	Price          string          `json:"price"`
	Description    string          `json:"description" validate:"max=5000"`
	Coordinates    Coordinates     `json:"coordinates"`
	Organizer      Organizer       `json:"organizer"`
	Recurrence     *Recurrence     `json:"recurrence,omitempty"`
	Duration       string          `json:"duration"`
	Tags           []string        `json:"tags"`
	Capacity       int             `json:"capacity" validate:"gte=0"`
	Facilities     EventFacilities `json:"facilities"`
	Tickets        EventTickets    `json:"tickets"`
	IsSponsored    bool            `json:"isSponsored"`
	SponsorEndDate string          `json:"sponsorEndDate"`
	AttendeeCount  int             `json:"attendeeCount" validate:"gte=0"`
	Rating         float64         `json:"rating" validate:"gte=0,lte=5"`
	Reviews        int             `json:"reviews" validate:"gte=0"`
}

// Datetime layouts seen in stored event times. The first is what the
// datetime-local form control submits.
var eventTimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// DeriveEventDay derives the 0-6 weekday (Sunday=0, Monday=1) from an
// event time string. Returns nil when the time is unparseable; the day
// column is derived at write time, never user-entered.
func DeriveEventDay(timeStr string) *int {
	s := strings.TrimSpace(timeStr)
	if s == "" {
		return nil
	}
	for _, layout := range eventTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			day := int(t.Weekday())
			return &day
		}
	}
	return nil
}

// CanonicalPrice normalizes a numeric-as-string price ("500.00" -> "500").
// Non-numeric text is kept verbatim since the column is free text.
func CanonicalPrice(price string) string {
	s := strings.TrimSpace(price)
	if s == "" {
		return ""
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// EventFromRecord converts a stored row into the edit view model,
// decoding JSON columns defensively and applying field defaults.
func EventFromRecord(r EventRecord, log *zerolog.Logger) EventViewModel {
	vm := EventViewModel{
		Id:          r.Id,
		Title:       r.Title,
		Category:    r.Category,
		Image:       r.Image,
		Time:        r.Time,
		Location:    r.Location,
		Price:       r.Price,
		Description: r.Description,
		Coordinates: Coordinates{Latitude: r.Latitude, Longitude: r.Longitude},
		Organizer: Organizer{
			Name:         r.OrganizerName,
			ContactEmail: r.OrganizerContactEmail,
			ContactPhone: r.OrganizerContactPhone,
			Website:      r.OrganizerWebsite,
		},
		Duration:       r.Duration,
		Tags:           r.Tags,
		Capacity:       r.Capacity,
		Facilities:     jsonx.Decode(r.Facilities, EventFacilities{}, log, "facilities"),
		Tickets:        jsonx.Decode(r.Tickets, EventTickets{}, log, "tickets"),
		IsSponsored:    r.IsSponsored,
		SponsorEndDate: r.SponsorEndDate,
		AttendeeCount:  r.AttendeeCount,
		Rating:         r.Rating,
		Reviews:        r.Reviews,
	}

	if vm.Tags == nil {
		vm.Tags = []string{}
	}
	if vm.Tickets.Types == nil {
		vm.Tickets.Types = []TicketType{}
	}
	if r.RecurrencePattern != "" {
		vm.Recurrence = &Recurrence{
			Pattern:       r.RecurrencePattern,
			CustomPattern: r.RecurrenceCustomPattern,
			EndDate:       r.RecurrenceEndDate,
		}
	}
	return vm
}

// EventToRecord flattens an edited view model back into the persisted row
// shape. The day column is derived from time here; created/updated
// timestamps belong to the store, not the mapper.
func EventToRecord(vm EventViewModel) EventRecord {
	r := EventRecord{
		Id:                    vm.Id,
		Title:                 vm.Title,
		Category:              vm.Category,
		Image:                 vm.Image,
		Time:                  vm.Time,
		Location:              vm.Location,
		Price:                 CanonicalPrice(vm.Price),
		Description:           vm.Description,
		Latitude:              vm.Coordinates.Latitude,
		Longitude:             vm.Coordinates.Longitude,
		OrganizerName:         vm.Organizer.Name,
		OrganizerContactEmail: vm.Organizer.ContactEmail,
		OrganizerContactPhone: vm.Organizer.ContactPhone,
		OrganizerWebsite:      vm.Organizer.Website,
		Duration:              vm.Duration,
		Tags:                  vm.Tags,
		Capacity:              vm.Capacity,
		IsSponsored:           vm.IsSponsored,
		SponsorEndDate:        vm.SponsorEndDate,
		AttendeeCount:         vm.AttendeeCount,
		Rating:                vm.Rating,
		Reviews:               vm.Reviews,
		Day:                   DeriveEventDay(vm.Time),
	}

	if vm.Recurrence != nil {
		r.RecurrencePattern = vm.Recurrence.Pattern
		r.RecurrenceCustomPattern = vm.Recurrence.CustomPattern
		r.RecurrenceEndDate = vm.Recurrence.EndDate
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}

	// Marshal of plain structs cannot fail.
	r.Facilities, _ = json.Marshal(vm.Facilities)
	r.Tickets, _ = json.Marshal(vm.Tickets)
	return r
}

// EventPatch carries a partial edit. Only non-nil fields translate into
// column assignments, so an update never invents values it wasn't given.
type EventPatch struct {
	Title          *string          `json:"title"`
	Category       *string          `json:"category"`
	Image          *string          `json:"image"`
	Time           *string          `json:"time"`
	Location       *string          `json:"location"`
	Price          *string          `json:"price"`
	Description    *string          `json:"description"`
	Coordinates    *Coordinates     `json:"coordinates"`
	Organizer      *Organizer       `json:"organizer"`
	Recurrence     *Recurrence      `json:"recurrence"`
	Duration       *string          `json:"duration"`
	Tags           *[]string        `json:"tags"`
	Capacity       *int             `json:"capacity"`
	Facilities     *EventFacilities `json:"facilities"`
	Tickets        *EventTickets    `json:"tickets"`
	IsSponsored    *bool            `json:"isSponsored"`
	SponsorEndDate *string          `json:"sponsorEndDate"`
}

// Columns returns the column assignments for the fields present in the
// patch. Changing time also rewrites the derived day column.
func (p EventPatch) Columns() map[string]any {
	cols := map[string]any{}
	setStr := func(name string, v *string) {
		if v != nil {
			cols[name] = *v
		}
	}

	setStr("title", p.Title)
	setStr("category", p.Category)
	setStr("image", p.Image)
	setStr("location", p.Location)
	setStr("description", p.Description)
	setStr("duration", p.Duration)
	setStr("sponsor_end_date", p.SponsorEndDate)

	if p.Time != nil {
		cols["time"] = *p.Time
		cols["day"] = DeriveEventDay(*p.Time)
	}
	if p.Price != nil {
		cols["price"] = CanonicalPrice(*p.Price)
	}
	if p.Coordinates != nil {
		cols["latitude"] = p.Coordinates.Latitude
		cols["longitude"] = p.Coordinates.Longitude
	}
	if p.Organizer != nil {
		cols["organizer_name"] = p.Organizer.Name
		cols["organizer_contact_email"] = p.Organizer.ContactEmail
		cols["organizer_contact_phone"] = p.Organizer.ContactPhone
		cols["organizer_website"] = p.Organizer.Website
	}
	if p.Recurrence != nil {
		cols["recurrence_pattern"] = p.Recurrence.Pattern
		cols["recurrence_custom_pattern"] = p.Recurrence.CustomPattern
		cols["recurrence_end_date"] = p.Recurrence.EndDate
	}
	if p.Tags != nil {
		cols["tags"] = *p.Tags
	}
	if p.Capacity != nil {
		cols["capacity"] = *p.Capacity
	}
	if p.Facilities != nil {
		data, _ := json.Marshal(p.Facilities)
		cols["facilities"] = data
	}
	if p.Tickets != nil {
		data, _ := json.Marshal(p.Tickets)
		cols["tickets"] = data
	}
	if p.IsSponsored != nil {
		cols["is_sponsored"] = *p.IsSponsored
	}
	return cols
}
