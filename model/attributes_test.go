package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeAttributesAccommodation(t *testing.T) {
	rooms := 5
	in := AttributeInputs{
		HasPool:     true,
		HasFreeWifi: false,
		RoomCount:   &rooms,
	}

	shaped := ShapeAttributes(SectionEstablishment, CategoryAccommodation, in)
	a, ok := shaped.(AccommodationAttributes)
	require.True(t, ok)

	assert.Equal(t, "hotel", a.AccommodationType)
	assert.Equal(t, []string{}, a.Rooms)
	assert.Equal(t, []string{"Swimming Pool"}, a.Facilities)
	assert.Equal(t, CheckPolicies{CheckIn: "14:00", CheckOut: "11:00"}, a.Policies)
	require.NotNil(t, a.RoomCount)
	assert.Equal(t, 5, *a.RoomCount)
}

func TestShapeAttributesAccommodationAllFlags(t *testing.T) {
	in := AttributeInputs{HasPool: true, HasFreeWifi: true, HasBreakfast: true, HasAirCon: true}

	a := ShapeAttributes(SectionEstablishment, CategoryAccommodation, in).(AccommodationAttributes)
	assert.Equal(t, []string{"Swimming Pool", "Free WiFi", "Breakfast Included", "Air Conditioning"}, a.Facilities)
	assert.Nil(t, a.RoomCount)
}

func TestShapeAttributesFoodDrink(t *testing.T) {
	in := AttributeInputs{Cuisine: "Thai", VeganOptions: true, AlcoholServed: true}

	a := ShapeAttributes(SectionEstablishment, CategoryFoodDrink, in).(FoodDrinkAttributes)
	assert.Equal(t, "restaurant", a.EstablishmentType)
	assert.Equal(t, []string{"Thai"}, a.Cuisine)
	assert.Equal(t, []string{"Vegan Options"}, a.DietaryOptions)
	assert.True(t, a.AlcoholServed)

	// Empty cuisine falls back to the catch-all label.
	a = ShapeAttributes(SectionEstablishment, CategoryFoodDrink, AttributeInputs{}).(FoodDrinkAttributes)
	assert.Equal(t, []string{"General"}, a.Cuisine)
	assert.Equal(t, []string{}, a.DietaryOptions)
}

func TestShapeAttributesTransport(t *testing.T) {
	in := AttributeInputs{VehicleTypes: []string{"scooter", "car"}, RequiresLicense: true}

	a := ShapeAttributes(SectionEstablishment, CategoryTransportProvider, in).(TransportAttributes)
	assert.Equal(t, "general", a.TransportType)
	assert.Equal(t, []string{"scooter", "car"}, a.Vehicles)
	assert.True(t, a.RequiresLicense)
	assert.Equal(t, []string{}, a.Services)

	a = ShapeAttributes(SectionEstablishment, CategoryTransportProvider, AttributeInputs{}).(TransportAttributes)
	assert.Equal(t, []string{}, a.Vehicles)
}

func TestShapeAttributesHealth(t *testing.T) {
	in := AttributeInputs{Specialties: []string{"dermatology"}, AcceptsInsurance: true}

	a := ShapeAttributes(SectionService, CategoryHealth, in).(HealthAttributes)
	assert.Equal(t, "medical", a.ServiceType)
	assert.Equal(t, []string{"dermatology"}, a.Specialties)
	assert.True(t, a.Insurance.AcceptsInsurance)
	assert.False(t, a.Emergency)
}

func TestShapeAttributesUnknownCombination(t *testing.T) {
	assert.Nil(t, ShapeAttributes(SectionEstablishment, CategoryShopping, AttributeInputs{HasPool: true}))
	assert.Nil(t, ShapeAttributes(SectionService, CategoryWellness, AttributeInputs{}))
	assert.Nil(t, ShapeAttributes(SectionService, CategoryAccommodation, AttributeInputs{}))

	assert.Nil(t, ShapeAttributesJSON(SectionEstablishment, CategoryEntertainment, AttributeInputs{}))
}

func TestShapeAttributesPure(t *testing.T) {
	rooms := 3
	in := AttributeInputs{HasPool: true, HasBreakfast: true, RoomCount: &rooms}

	first := ShapeAttributes(SectionEstablishment, CategoryAccommodation, in)
	second := ShapeAttributes(SectionEstablishment, CategoryAccommodation, in)
	assert.Equal(t, first, second)
}

func TestExpandAttributesInvertsShape(t *testing.T) {
	rooms := 7
	in := AttributeInputs{HasPool: true, HasAirCon: true, RoomCount: &rooms}

	raw := ShapeAttributesJSON(SectionEstablishment, CategoryAccommodation, in)
	out := ExpandAttributes(SectionEstablishment, CategoryAccommodation, raw)

	assert.True(t, out.HasPool)
	assert.True(t, out.HasAirCon)
	assert.False(t, out.HasFreeWifi)
	assert.False(t, out.HasBreakfast)
	require.NotNil(t, out.RoomCount)
	assert.Equal(t, 7, *out.RoomCount)
}

func TestExpandAttributesFoodDrink(t *testing.T) {
	raw := ShapeAttributesJSON(SectionEstablishment, CategoryFoodDrink,
		AttributeInputs{Cuisine: "Thai", VeganOptions: true, AlcoholServed: true})

	out := ExpandAttributes(SectionEstablishment, CategoryFoodDrink, raw)
	assert.Equal(t, "Thai", out.Cuisine)
	assert.True(t, out.VeganOptions)
	assert.True(t, out.AlcoholServed)

	// The "General" placeholder expands back to an empty cuisine input.
	raw = ShapeAttributesJSON(SectionEstablishment, CategoryFoodDrink, AttributeInputs{})
	out = ExpandAttributes(SectionEstablishment, CategoryFoodDrink, raw)
	assert.Equal(t, "", out.Cuisine)
}

func TestNormalizeAttributes(t *testing.T) {
	t.Run("unknown combination persists nothing", func(t *testing.T) {
		raw := NormalizeAttributes(SectionService, CategoryWellness,
			map[string]any{"junk": 1, "roomCount": 99})
		assert.Nil(t, raw)
	})

	t.Run("known combination keeps only its shape", func(t *testing.T) {
		raw := NormalizeAttributes(SectionEstablishment, CategoryAccommodation,
			map[string]any{
				"facilities": []any{"Swimming Pool", "Free WiFi"},
				"roomCount":  8,
				"junk":       "dropped",
			})

		var a AccommodationAttributes
		require.NoError(t, json.Unmarshal(raw, &a))
		assert.Equal(t, []string{"Swimming Pool", "Free WiFi"}, a.Facilities)
		require.NotNil(t, a.RoomCount)
		assert.Equal(t, 8, *a.RoomCount)

		var bag map[string]any
		require.NoError(t, json.Unmarshal(raw, &bag))
		assert.NotContains(t, bag, "junk")
	})

	t.Run("empty bag persists nothing", func(t *testing.T) {
		assert.Nil(t, NormalizeAttributes(SectionEstablishment, CategoryAccommodation, nil))
		assert.Nil(t, NormalizeAttributes(SectionEstablishment, CategoryAccommodation, map[string]any{}))
	})
}

func TestExpandAttributesToleratesBadColumn(t *testing.T) {
	out := ExpandAttributes(SectionEstablishment, CategoryAccommodation, json.RawMessage(`{broken`))
	assert.Equal(t, AttributeInputs{}, out)

	out = ExpandAttributes(SectionService, CategoryWellness, json.RawMessage(`{"anything":1}`))
	assert.Equal(t, AttributeInputs{}, out)
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory(SectionEstablishment, CategoryAccommodation))
	assert.True(t, ValidCategory(SectionService, CategoryHealth))
	assert.False(t, ValidCategory(SectionEstablishment, CategoryHealth))
	assert.False(t, ValidCategory(SectionService, CategoryFoodDrink))
	assert.False(t, ValidCategory("OTHER", CategoryAccommodation))
}

func TestValidSubcategory(t *testing.T) {
	assert.True(t, ValidSubcategory(CategoryAccommodation, "hotel"))
	assert.True(t, ValidSubcategory(CategoryAccommodation, ""))
	assert.False(t, ValidSubcategory(CategoryAccommodation, "restaurant"))
	assert.True(t, ValidSubcategory("UNSCOPED", "anything"))
}
