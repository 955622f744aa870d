package model

import (
	"encoding/json"

	"github.com/islandguide/admin-api/jsonx"
)

// Partner taxonomy. A partner belongs to a section, the section scopes
// the main category and the main category scopes the subcategory.
type Section string

const (
	SectionEstablishment Section = "ESTABLISHMENT"
	SectionService       Section = "SERVICE"
)

type MainCategory string

const (
	// ESTABLISHMENT categories
	CategoryAccommodation     MainCategory = "ACCOMMODATION"
	CategoryFoodDrink         MainCategory = "FOOD_DRINK"
	CategoryTransportProvider MainCategory = "TRANSPORT_PROVIDER"
	CategoryShopping          MainCategory = "SHOPPING"
	CategoryEntertainment     MainCategory = "ENTERTAINMENT"

	// SERVICE categories
	CategoryHealth     MainCategory = "HEALTH"
	CategoryWellness   MainCategory = "WELLNESS"
	CategoryMobility   MainCategory = "MOBILITY"
	CategoryRealEstate MainCategory = "REAL_ESTATE"
)

// sectionCategories scopes main categories per section.
var sectionCategories = map[Section][]MainCategory{
	SectionEstablishment: {
		CategoryAccommodation,
		CategoryFoodDrink,
		CategoryTransportProvider,
		CategoryShopping,
		CategoryEntertainment,
	},
	SectionService: {
		CategoryHealth,
		CategoryWellness,
		CategoryMobility,
		CategoryRealEstate,
	},
}

// categorySubcategories scopes subcategories per main category. A category
// without an entry accepts any subcategory text.
var categorySubcategories = map[MainCategory][]string{
	CategoryAccommodation:     {"hotel", "hostel", "bungalow", "villa", "guesthouse"},
	CategoryFoodDrink:         {"restaurant", "cafe", "bar", "street-food", "bakery"},
	CategoryTransportProvider: {"taxi", "scooter-rental", "boat", "shuttle"},
	CategoryShopping:          {"market", "boutique", "convenience"},
	CategoryEntertainment:     {"club", "live-music", "cinema"},
	CategoryHealth:            {"clinic", "pharmacy", "dental", "hospital"},
	CategoryWellness:          {"spa", "massage", "yoga"},
	CategoryMobility:          {"car-rental", "bike-rental", "transfer"},
	CategoryRealEstate:        {"agency", "property-management"},
}

// ValidCategory reports whether category belongs to section.
func ValidCategory(section Section, category MainCategory) bool {
	for _, c := range sectionCategories[section] {
		if c == category {
			return true
		}
	}
	return false
}

// ValidSubcategory reports whether subcategory is consistent with
// category. Empty subcategory is allowed everywhere.
func ValidSubcategory(category MainCategory, subcategory string) bool {
	if subcategory == "" {
		return true
	}
	subs, ok := categorySubcategories[category]
	if !ok {
		return true
	}
	for _, s := range subs {
		if s == subcategory {
			return true
		}
	}
	return false
}

// AttributeInputs is the flat form-values shape the category panels bind
// to. Only the fields relevant to the chosen category are read; the rest
// stay at their zero value.
type AttributeInputs struct {
	// accommodation
	HasPool      bool `json:"hasPool"`
	HasFreeWifi  bool `json:"hasFreeWifi"`
	HasBreakfast bool `json:"hasBreakfast"`
	HasAirCon    bool `json:"hasAirCon"`
	RoomCount    *int `json:"roomCount,omitempty"`

	// food & drink
	Cuisine       string `json:"cuisine"`
	VeganOptions  bool   `json:"veganOptions"`
	AlcoholServed bool   `json:"alcoholServed"`

	// transport
	VehicleTypes    []string `json:"vehicleTypes"`
	RequiresLicense bool     `json:"requiresLicense"`

	// health
	Specialties      []string `json:"specialties"`
	AcceptsInsurance bool     `json:"acceptsInsurance"`
}

type CheckPolicies struct {
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
}

type AccommodationAttributes struct {
	AccommodationType string        `json:"accommodationType"`
	Rooms             []string      `json:"rooms"`
	Facilities        []string      `json:"facilities"`
	Policies          CheckPolicies `json:"policies"`
	RoomCount         *int          `json:"roomCount,omitempty"`
}

type FoodDrinkAttributes struct {
	EstablishmentType string   `json:"establishmentType"`
	Cuisine           []string `json:"cuisine"`
	DietaryOptions    []string `json:"dietaryOptions"`
	AlcoholServed     bool     `json:"alcoholServed"`
}

type TransportAttributes struct {
	TransportType   string   `json:"transportType"`
	Vehicles        []string `json:"vehicles"`
	RequiresLicense bool     `json:"requiresLicense"`
	Services        []string `json:"services"`
}

type HealthInsurance struct {
	AcceptsInsurance bool `json:"acceptsInsurance"`
}

type HealthAttributes struct {
	ServiceType string          `json:"serviceType"`
	Specialties []string        `json:"specialties"`
	Insurance   HealthInsurance `json:"insurance"`
	Emergency   bool            `json:"emergency"`
}

// Amenity flag labels persisted in accommodation facilities.
const (
	facilityPool      = "Swimming Pool"
	facilityFreeWifi  = "Free WiFi"
	facilityBreakfast = "Breakfast Included"
	facilityAirCon    = "Air Conditioning"
)

// shaperKey identifies one cell of the closed (section, category) table.
type shaperKey struct {
	section  Section
	category MainCategory
}

// attributeShapers is the closed lookup table that replaces the chained
// per-category conditionals of the edit forms. Combinations without an
// entry persist no attributes.
var attributeShapers = map[shaperKey]func(AttributeInputs) any{
	{SectionEstablishment, CategoryAccommodation}: func(in AttributeInputs) any {
		a := AccommodationAttributes{
			AccommodationType: "hotel",
			Rooms:             []string{},
			Facilities:        []string{},
			Policies:          CheckPolicies{CheckIn: "14:00", CheckOut: "11:00"},
			RoomCount:         in.RoomCount,
		}
		if in.HasPool {
			a.Facilities = append(a.Facilities, facilityPool)
		}
		if in.HasFreeWifi {
			a.Facilities = append(a.Facilities, facilityFreeWifi)
		}
		if in.HasBreakfast {
			a.Facilities = append(a.Facilities, facilityBreakfast)
		}
		if in.HasAirCon {
			a.Facilities = append(a.Facilities, facilityAirCon)
		}
		return a
	},
	{SectionEstablishment, CategoryFoodDrink}: func(in AttributeInputs) any {
		cuisine := in.Cuisine
		if cuisine == "" {
			cuisine = "General"
		}
		a := FoodDrinkAttributes{
			EstablishmentType: "restaurant",
			Cuisine:           []string{cuisine},
			DietaryOptions:    []string{},
			AlcoholServed:     in.AlcoholServed,
		}
		if in.VeganOptions {
			a.DietaryOptions = append(a.DietaryOptions, "Vegan Options")
		}
		return a
	},
	{SectionEstablishment, CategoryTransportProvider}: func(in AttributeInputs) any {
		vehicles := in.VehicleTypes
		if vehicles == nil {
			vehicles = []string{}
		}
		return TransportAttributes{
			TransportType:   "general",
			Vehicles:        vehicles,
			RequiresLicense: in.RequiresLicense,
			Services:        []string{},
		}
	},
	{SectionService, CategoryHealth}: func(in AttributeInputs) any {
		specialties := in.Specialties
		if specialties == nil {
			specialties = []string{}
		}
		return HealthAttributes{
			ServiceType: "medical",
			Specialties: specialties,
			Insurance:   HealthInsurance{AcceptsInsurance: in.AcceptsInsurance},
			Emergency:   false,
		}
	},
}

// ShapeAttributes filters the generic attribute inputs down to the fields
// relevant to the chosen category. Returns nil for combinations outside
// the closed table; the UI shows a "no specific fields" placeholder then.
// Pure: identical inputs always yield deep-equal outputs.
func ShapeAttributes(section Section, category MainCategory, in AttributeInputs) any {
	shape, ok := attributeShapers[shaperKey{section, category}]
	if !ok {
		return nil
	}
	return shape(in)
}

// ShapeAttributesJSON shapes and serializes in one step for persistence.
// Returns nil bytes when the combination persists no attributes.
func ShapeAttributesJSON(section Section, category MainCategory, in AttributeInputs) json.RawMessage {
	shaped := ShapeAttributes(section, category, in)
	if shaped == nil {
		return nil
	}
	data, _ := json.Marshal(shaped)
	return data
}

// NormalizeAttributes re-shapes a client-supplied attributes bag before
// it is persisted: the bag is expanded into the flat inputs and shaped
// again, so only the fields the (section, category) combination defines
// survive. Combinations outside the shaper table persist no attributes,
// whatever the client sent.
func NormalizeAttributes(section Section, category MainCategory, attrs map[string]any) json.RawMessage {
	if len(attrs) == 0 {
		return nil
	}
	raw, _ := json.Marshal(attrs)
	in := ExpandAttributes(section, category, raw)
	return ShapeAttributesJSON(section, category, in)
}

// ExpandAttributes is the editing-direction inverse: it reads a stored
// attributes column back into the flat form-values shape. Unknown
// combinations and unparseable payloads expand to zero inputs.
func ExpandAttributes(section Section, category MainCategory, raw json.RawMessage) AttributeInputs {
	var in AttributeInputs

	switch (shaperKey{section, category}) {
	case shaperKey{SectionEstablishment, CategoryAccommodation}:
		a := jsonx.Decode(raw, AccommodationAttributes{}, nil, "attributes")
		for _, f := range a.Facilities {
			switch f {
			case facilityPool:
				in.HasPool = true
			case facilityFreeWifi:
				in.HasFreeWifi = true
			case facilityBreakfast:
				in.HasBreakfast = true
			case facilityAirCon:
				in.HasAirCon = true
			}
		}
		in.RoomCount = a.RoomCount

	case shaperKey{SectionEstablishment, CategoryFoodDrink}:
		a := jsonx.Decode(raw, FoodDrinkAttributes{}, nil, "attributes")
		if len(a.Cuisine) > 0 && a.Cuisine[0] != "General" {
			in.Cuisine = a.Cuisine[0]
		}
		for _, d := range a.DietaryOptions {
			if d == "Vegan Options" {
				in.VeganOptions = true
			}
		}
		in.AlcoholServed = a.AlcoholServed

	case shaperKey{SectionEstablishment, CategoryTransportProvider}:
		a := jsonx.Decode(raw, TransportAttributes{}, nil, "attributes")
		in.VehicleTypes = a.Vehicles
		in.RequiresLicense = a.RequiresLicense

	case shaperKey{SectionService, CategoryHealth}:
		a := jsonx.Decode(raw, HealthAttributes{}, nil, "attributes")
		in.Specialties = a.Specialties
		in.AcceptsInsurance = a.Insurance.AcceptsInsurance
	}

	return in
}
