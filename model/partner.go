package model

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/islandguide/admin-api/jsonx"
)

// Price range labels accepted on partners and services.
var PriceRanges = []string{"€", "€€", "€€€", "€€€€", "Free", "Varies"}

// PartnerRecord is the flat partners row. Nested view-model leaves are
// flattened into individual columns; social, payment_options and
// attributes remain JSON columns with the usual string-or-object
// ambiguity.
type PartnerRecord struct {
	Id                   string          `json:"id"`
	Name                 string          `json:"name"`
	Section              Section         `json:"section"`
	MainCategory         MainCategory    `json:"main_category"`
	Subcategory          string          `json:"subcategory"`
	MainImage            string          `json:"main_image"`
	GalleryImages        []string        `json:"gallery_images"`
	ShortDescription     string          `json:"short_description"`
	LongDescription      string          `json:"long_description"`
	Address              string          `json:"address"`
	Latitude             float64         `json:"latitude"`
	Longitude            float64         `json:"longitude"`
	Area                 string          `json:"area"`
	Phone                string          `json:"phone"`
	Email                string          `json:"email"`
	Website              string          `json:"website"`
	LineId               string          `json:"line_id"`
	Social               json.RawMessage `json:"social"`
	RegularHours         string          `json:"regular_hours"`
	SeasonalChanges      string          `json:"seasonal_changes"`
	Open24h              bool            `json:"open_24h"`
	RatingScore          float64         `json:"rating_score"`
	RatingReviewCount    int             `json:"rating_review_count"`
	Tags                 []string        `json:"tags"`
	PriceRange           string          `json:"price_range"`
	Currency             string          `json:"currency"`
	Features             []string        `json:"features"`
	Languages            []string        `json:"languages"`
	IsSponsored          bool            `json:"is_sponsored"`
	IsFeatured           bool            `json:"is_featured"`
	PromotionEndsAt      string          `json:"promotion_ends_at"`
	WheelchairAccessible bool            `json:"wheelchair_accessible"`
	FamilyFriendly       bool            `json:"family_friendly"`
	PetFriendly          bool            `json:"pet_friendly"`
	PaymentOptions       json.RawMessage `json:"payment_options"`
	Attributes           json.RawMessage `json:"attributes"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

type PartnerImages struct {
	Main    string   `json:"main"`
	Gallery []string `json:"gallery"`
}

type PartnerDescription struct {
	Short string `json:"short"`
	Long  string `json:"long"`
}

type PartnerLocation struct {
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
	Area        string      `json:"area"`
}

type SocialLinks struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
}

type PartnerContact struct {
	Phone   string      `json:"phone"`
	Email   string      `json:"email" validate:"omitempty,email"`
	Website string      `json:"website" validate:"omitempty,url"`
	LineId  string      `json:"lineId"`
	Social  SocialLinks `json:"social"`
}

type PartnerHours struct {
	RegularHours    string `json:"regularHours"`
	SeasonalChanges string `json:"seasonalChanges"`
	Open24h         bool   `json:"open24h"`
}

type PartnerRating struct {
	Score       float64 `json:"score" validate:"gte=0,lte=5"`
	ReviewCount int     `json:"reviewCount" validate:"gte=0"`
}

type PartnerPrices struct {
	PriceRange string `json:"priceRange" validate:"omitempty,pricerange"`
	Currency   string `json:"currency"`
}

type PartnerPromotion struct {
	IsSponsored     bool   `json:"isSponsored"`
	IsFeatured      bool   `json:"isFeatured"`
	PromotionEndsAt string `json:"promotionEndsAt"`
}

type PartnerAccessibility struct {
	WheelchairAccessible bool `json:"wheelchairAccessible"`
	FamilyFriendly       bool `json:"familyFriendly"`
	PetFriendly          bool `json:"petFriendly"`
}

type PaymentOptions struct {
	Cash           bool     `json:"cash"`
	CreditCard     bool     `json:"creditCard"`
	MobilePay      bool     `json:"mobilePay"`
	CryptoCurrency bool     `json:"cryptoCurrency"`
	AcceptedCards  []string `json:"acceptedCards"`
}

// PartnerViewModel is the nested edit shape of a partner. The attributes
// bag stays generic here; the category panels go through ExpandAttributes
// to read it and ShapeAttributes to write it.
type PartnerViewModel struct {
	Id             string               `json:"id"`
	Name           string               `json:"name" validate:"required,min=2,max=200"`
	Section        Section              `json:"section" validate:"required,oneof=ESTABLISHMENT SERVICE"`
	MainCategory   MainCategory         `json:"mainCategory" validate:"required"`
	Subcategory    string               `json:"subcategory"`
	Images         PartnerImages        `json:"images"`
	Description    PartnerDescription   `json:"description"`
	Location       PartnerLocation      `json:"location"`
	Contact        PartnerContact       `json:"contact"`
	Hours          PartnerHours         `json:"hours"`
	Rating         PartnerRating        `json:"rating"`
	Tags           []string             `json:"tags"`
	Prices         PartnerPrices        `json:"prices"`
	Features       []string             `json:"features"`
	Languages      []string             `json:"languages"`
	Promotion      PartnerPromotion     `json:"promotion"`
	Accessibility  PartnerAccessibility `json:"accessibility"`
	PaymentOptions PaymentOptions       `json:"paymentOptions"`
	Attributes     map[string]any       `json:"attributes"`
}

// PartnerFromRecord converts a stored partner row into the edit view
// model with every form-bound key defined.
func PartnerFromRecord(r PartnerRecord, log *zerolog.Logger) PartnerViewModel {
	vm := PartnerViewModel{
		Id:           r.Id,
		Name:         r.Name,
		Section:      r.Section,
		MainCategory: r.MainCategory,
		Subcategory:  r.Subcategory,
		Images: PartnerImages{
			Main:    r.MainImage,
			Gallery: r.GalleryImages,
		},
		Description: PartnerDescription{
			Short: r.ShortDescription,
			Long:  r.LongDescription,
		},
		Location: PartnerLocation{
			Address:     r.Address,
			Coordinates: Coordinates{Latitude: r.Latitude, Longitude: r.Longitude},
			Area:        r.Area,
		},
		Contact: PartnerContact{
			Phone:   r.Phone,
			Email:   r.Email,
			Website: r.Website,
			LineId:  r.LineId,
			Social:  jsonx.Decode(r.Social, SocialLinks{}, log, "social"),
		},
		Hours: PartnerHours{
			RegularHours:    r.RegularHours,
			SeasonalChanges: r.SeasonalChanges,
			Open24h:         r.Open24h,
		},
		Rating: PartnerRating{
			Score:       r.RatingScore,
			ReviewCount: r.RatingReviewCount,
		},
		Tags: r.Tags,
		Prices: PartnerPrices{
			PriceRange: r.PriceRange,
			Currency:   r.Currency,
		},
		Features:  r.Features,
		Languages: r.Languages,
		Promotion: PartnerPromotion{
			IsSponsored:     r.IsSponsored,
			IsFeatured:      r.IsFeatured,
			PromotionEndsAt: r.PromotionEndsAt,
		},
		Accessibility: PartnerAccessibility{
			WheelchairAccessible: r.WheelchairAccessible,
			FamilyFriendly:       r.FamilyFriendly,
			PetFriendly:          r.PetFriendly,
		},
		PaymentOptions: jsonx.Decode(r.PaymentOptions, PaymentOptions{}, log, "payment_options"),
		Attributes:     jsonx.Decode(r.Attributes, map[string]any{}, log, "attributes"),
	}

	if vm.Images.Gallery == nil {
		vm.Images.Gallery = []string{}
	}
	if vm.Tags == nil {
		vm.Tags = []string{}
	}
	if vm.Features == nil {
		vm.Features = []string{}
	}
	if vm.Languages == nil {
		vm.Languages = []string{}
	}
	if vm.PaymentOptions.AcceptedCards == nil {
		vm.PaymentOptions.AcceptedCards = []string{}
	}
	if vm.Attributes == nil {
		vm.Attributes = map[string]any{}
	}
	return vm
}

// PartnerToRecord flattens an edited partner view model back to the row
// shape. An empty attributes bag persists as null, matching what the
// shaper emits for categories without specific fields.
func PartnerToRecord(vm PartnerViewModel) PartnerRecord {
	r := PartnerRecord{
		Id:                   vm.Id,
		Name:                 vm.Name,
		Section:              vm.Section,
		MainCategory:         vm.MainCategory,
		Subcategory:          vm.Subcategory,
		MainImage:            vm.Images.Main,
		GalleryImages:        vm.Images.Gallery,
		ShortDescription:     vm.Description.Short,
		LongDescription:      vm.Description.Long,
		Address:              vm.Location.Address,
		Latitude:             vm.Location.Coordinates.Latitude,
		Longitude:            vm.Location.Coordinates.Longitude,
		Area:                 vm.Location.Area,
		Phone:                vm.Contact.Phone,
		Email:                vm.Contact.Email,
		Website:              vm.Contact.Website,
		LineId:               vm.Contact.LineId,
		RegularHours:         vm.Hours.RegularHours,
		SeasonalChanges:      vm.Hours.SeasonalChanges,
		Open24h:              vm.Hours.Open24h,
		RatingScore:          vm.Rating.Score,
		RatingReviewCount:    vm.Rating.ReviewCount,
		Tags:                 vm.Tags,
		PriceRange:           vm.Prices.PriceRange,
		Currency:             vm.Prices.Currency,
		Features:             vm.Features,
		Languages:            vm.Languages,
		IsSponsored:          vm.Promotion.IsSponsored,
		IsFeatured:           vm.Promotion.IsFeatured,
		PromotionEndsAt:      vm.Promotion.PromotionEndsAt,
		WheelchairAccessible: vm.Accessibility.WheelchairAccessible,
		FamilyFriendly:       vm.Accessibility.FamilyFriendly,
		PetFriendly:          vm.Accessibility.PetFriendly,
	}

	if r.GalleryImages == nil {
		r.GalleryImages = []string{}
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	if r.Features == nil {
		r.Features = []string{}
	}
	if r.Languages == nil {
		r.Languages = []string{}
	}

	r.Social, _ = json.Marshal(vm.Contact.Social)
	r.PaymentOptions, _ = json.Marshal(vm.PaymentOptions)
	if len(vm.Attributes) > 0 {
		r.Attributes, _ = json.Marshal(vm.Attributes)
	}
	return r
}

// PartnerPatch carries a partial partner edit.
type PartnerPatch struct {
	Name          *string               `json:"name"`
	Section       *Section              `json:"section"`
	MainCategory  *MainCategory         `json:"mainCategory"`
	Subcategory   *string               `json:"subcategory"`
	Images        *PartnerImages        `json:"images"`
	Description   *PartnerDescription   `json:"description"`
	Location      *PartnerLocation      `json:"location"`
	Contact       *PartnerContact       `json:"contact"`
	Hours         *PartnerHours         `json:"hours"`
	Tags          *[]string             `json:"tags"`
	Prices        *PartnerPrices        `json:"prices"`
	Features      *[]string             `json:"features"`
	Languages     *[]string             `json:"languages"`
	Promotion     *PartnerPromotion     `json:"promotion"`
	Accessibility *PartnerAccessibility `json:"accessibility"`
	PaymentOpts   *PaymentOptions       `json:"paymentOptions"`
	Attributes    *map[string]any       `json:"attributes"`
}

// Columns returns column assignments for the fields present in the patch.
func (p PartnerPatch) Columns() map[string]any {
	cols := map[string]any{}

	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Section != nil {
		cols["section"] = string(*p.Section)
	}
	if p.MainCategory != nil {
		cols["main_category"] = string(*p.MainCategory)
	}
	if p.Subcategory != nil {
		cols["subcategory"] = *p.Subcategory
	}
	if p.Images != nil {
		cols["main_image"] = p.Images.Main
		cols["gallery_images"] = p.Images.Gallery
	}
	if p.Description != nil {
		cols["short_description"] = p.Description.Short
		cols["long_description"] = p.Description.Long
	}
	if p.Location != nil {
		cols["address"] = p.Location.Address
		cols["latitude"] = p.Location.Coordinates.Latitude
		cols["longitude"] = p.Location.Coordinates.Longitude
		cols["area"] = p.Location.Area
	}
	if p.Contact != nil {
		cols["phone"] = p.Contact.Phone
		cols["email"] = p.Contact.Email
		cols["website"] = p.Contact.Website
		cols["line_id"] = p.Contact.LineId
		social, _ := json.Marshal(p.Contact.Social)
		cols["social"] = social
	}
	if p.Hours != nil {
		cols["regular_hours"] = p.Hours.RegularHours
		cols["seasonal_changes"] = p.Hours.SeasonalChanges
		cols["open_24h"] = p.Hours.Open24h
	}
	if p.Tags != nil {
		cols["tags"] = *p.Tags
	}
	if p.Prices != nil {
		cols["price_range"] = p.Prices.PriceRange
		cols["currency"] = p.Prices.Currency
	}
	if p.Features != nil {
		cols["features"] = *p.Features
	}
	if p.Languages != nil {
		cols["languages"] = *p.Languages
	}
	if p.Promotion != nil {
		cols["is_sponsored"] = p.Promotion.IsSponsored
		cols["is_featured"] = p.Promotion.IsFeatured
		cols["promotion_ends_at"] = p.Promotion.PromotionEndsAt
	}
	if p.Accessibility != nil {
		cols["wheelchair_accessible"] = p.Accessibility.WheelchairAccessible
		cols["family_friendly"] = p.Accessibility.FamilyFriendly
		cols["pet_friendly"] = p.Accessibility.PetFriendly
	}
	if p.PaymentOpts != nil {
		data, _ := json.Marshal(p.PaymentOpts)
		cols["payment_options"] = data
	}
	if p.Attributes != nil {
		data, _ := json.Marshal(*p.Attributes)
		cols["attributes"] = data
	}
	return cols
}
