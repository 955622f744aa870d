package model

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/islandguide/admin-api/jsonx"
)

// Service categories for the flatter service shape.
const (
	ServiceAccommodation = "accommodation"
	ServiceHealth        = "health"
	ServiceWellness      = "wellness"
	ServiceMobility      = "mobility"
	ServiceRealEstate    = "real-estate"
)

var ServiceCategories = []string{
	ServiceAccommodation,
	ServiceHealth,
	ServiceWellness,
	ServiceMobility,
	ServiceRealEstate,
}

// ServiceRecord is the flat services row. The service_data column is the
// category-shaped bag and carries the same string-or-object ambiguity as
// the other JSON columns.
type ServiceRecord struct {
	Id          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Address     string          `json:"address"`
	Phone       string          `json:"phone"`
	Email       string          `json:"email"`
	Website     string          `json:"website"`
	PriceRange  string          `json:"price_range"`
	Languages   []string        `json:"languages"`
	IsActive    bool            `json:"is_active"`
	ServiceData json.RawMessage `json:"service_data"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Category-shaped service data bags. Which one applies follows the
// category column; the store keeps them in the single service_data column.
type AccommodationServiceData struct {
	RoomTypes          []string `json:"roomTypes"`
	CheckIn            string   `json:"checkIn"`
	CheckOut           string   `json:"checkOut"`
	CancellationPolicy string   `json:"cancellationPolicy"`
}

type HealthServiceData struct {
	Emergency         bool     `json:"emergency"`
	Services          []string `json:"services"`
	InsuranceAccepted []string `json:"insuranceAccepted"`
}

type WellnessServiceData struct {
	Treatments []string `json:"treatments"`
}

type MobilityServiceData struct {
	Vehicles []string `json:"vehicles"`
}

type RealEstateServiceData struct {
	YearsInBusiness int      `json:"yearsInBusiness"`
	ServicesOffered []string `json:"servicesOffered"`
}

// ServiceViewModel is the edit shape of a service.
type ServiceViewModel struct {
	Id          string         `json:"id"`
	Name        string         `json:"name" validate:"required,min=2,max=200"`
	Category    string         `json:"category" validate:"required,oneof=accommodation health wellness mobility real-estate"`
	Subcategory string         `json:"subcategory"`
	Description string         `json:"description" validate:"max=5000"`
	Image       string         `json:"image" validate:"omitempty,url"`
	Address     string         `json:"address"`
	Phone       string         `json:"phone"`
	Email       string         `json:"email" validate:"omitempty,email"`
	Website     string         `json:"website" validate:"omitempty,url"`
	PriceRange  string         `json:"priceRange" validate:"omitempty,pricerange"`
	Languages   []string       `json:"languages"`
	IsActive    bool           `json:"isActive"`
	ServiceData map[string]any `json:"serviceData"`
}

// ServiceFromRecord converts a stored service row into the edit view
// model with defaults applied.
func ServiceFromRecord(r ServiceRecord, log *zerolog.Logger) ServiceViewModel {
	vm := ServiceViewModel{
		Id:          r.Id,
		Name:        r.Name,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Description: r.Description,
		Image:       r.Image,
		Address:     r.Address,
		Phone:       r.Phone,
		Email:       r.Email,
		Website:     r.Website,
		PriceRange:  r.PriceRange,
		Languages:   r.Languages,
		IsActive:    r.IsActive,
		ServiceData: jsonx.Decode(r.ServiceData, map[string]any{}, log, "service_data"),
	}
	if vm.Languages == nil {
		vm.Languages = []string{}
	}
	if vm.ServiceData == nil {
		vm.ServiceData = map[string]any{}
	}
	return vm
}

// ServiceToRecord flattens an edited service view model back to the row
// shape.
func ServiceToRecord(vm ServiceViewModel) ServiceRecord {
	r := ServiceRecord{
		Id:          vm.Id,
		Name:        vm.Name,
		Category:    vm.Category,
		Subcategory: vm.Subcategory,
		Description: vm.Description,
		Image:       vm.Image,
		Address:     vm.Address,
		Phone:       vm.Phone,
		Email:       vm.Email,
		Website:     vm.Website,
		PriceRange:  vm.PriceRange,
		Languages:   vm.Languages,
		IsActive:    vm.IsActive,
	}
	if r.Languages == nil {
		r.Languages = []string{}
	}
	if len(vm.ServiceData) > 0 {
		r.ServiceData, _ = json.Marshal(vm.ServiceData)
	}
	return r
}

// ServicePatch carries a partial service edit.
type ServicePatch struct {
	Name        *string         `json:"name"`
	Category    *string         `json:"category"`
	Subcategory *string         `json:"subcategory"`
	Description *string         `json:"description"`
	Image       *string         `json:"image"`
	Address     *string         `json:"address"`
	Phone       *string         `json:"phone"`
	Email       *string         `json:"email"`
	Website     *string         `json:"website"`
	PriceRange  *string         `json:"priceRange"`
	Languages   *[]string       `json:"languages"`
	IsActive    *bool           `json:"isActive"`
	ServiceData *map[string]any `json:"serviceData"`
}

// Columns returns column assignments for the fields present in the patch.
func (p ServicePatch) Columns() map[string]any {
	cols := map[string]any{}
	setStr := func(name string, v *string) {
		if v != nil {
			cols[name] = *v
		}
	}

	setStr("name", p.Name)
	setStr("category", p.Category)
	setStr("subcategory", p.Subcategory)
	setStr("description", p.Description)
	setStr("image", p.Image)
	setStr("address", p.Address)
	setStr("phone", p.Phone)
	setStr("email", p.Email)
	setStr("website", p.Website)
	setStr("price_range", p.PriceRange)

	if p.Languages != nil {
		cols["languages"] = *p.Languages
	}
	if p.IsActive != nil {
		cols["is_active"] = *p.IsActive
	}
	if p.ServiceData != nil {
		data, _ := json.Marshal(*p.ServiceData)
		cols["service_data"] = data
	}
	return cols
}
