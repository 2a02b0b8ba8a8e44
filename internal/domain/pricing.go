package domain

// RoomLabel is a room name as the booking form shows it.
type RoomLabel string

const (
	RoomLivingRoom RoomLabel = "Living Room"
	RoomTerrace    RoomLabel = "Terrace"
	RoomBedroom    RoomLabel = "Bedroom"
	RoomBathroom   RoomLabel = "Bathroom"
	RoomKitchen    RoomLabel = "Kitchen"
	RoomDining     RoomLabel = "Dining"
	RoomGarage     RoomLabel = "Garage"
)

// BackendRoomLabel is a room name as the booking API expects it.
type BackendRoomLabel string

const (
	BackendLivingRoom  BackendRoomLabel = "Living Room"
	BackendBedrooms    BackendRoomLabel = "Bedrooms"
	BackendBathrooms   BackendRoomLabel = "Bathrooms"
	BackendKitchen     BackendRoomLabel = "Kitchen"
	BackendDiningRoom  BackendRoomLabel = "Dining Room"
	BackendTerrace     BackendRoomLabel = "Terrace/Balcony"
	BackendGarage      BackendRoomLabel = "Garage"
	BackendStudyOffice BackendRoomLabel = "Study/Office"
)

// BackendRoomLabels lists every label the API knows, in display order.
var BackendRoomLabels = []BackendRoomLabel{
	BackendLivingRoom, BackendBedrooms, BackendBathrooms, BackendKitchen,
	BackendDiningRoom, BackendTerrace, BackendGarage, BackendStudyOffice,
}

// RoomSelection maps form labels to room counts. Counts must be >= 0.
type RoomSelection map[RoomLabel]int

// Upper bounds on a selection; anything above is not a home.
const (
	MaxRoomsPerLabel = 50
	MaxTotalRooms    = 100
)

// BackendRoomSelection maps API labels to room counts.
type BackendRoomSelection map[BackendRoomLabel]int

type Category string

const (
	CategoryStandard Category = "Standard Cleaning"
	CategoryDeep     Category = "Deep Cleaning"
	CategoryMoveIn   Category = "Move-in Cleaning"
	CategoryMoveOut  Category = "Move-out Cleaning"
)

type Package string

const (
	PackageBasic    Package = "Basic Package"
	PackageStandard Package = "Standard Package"
	PackagePremium  Package = "Premium Package"
	PackageLuxury   Package = "Luxury Package"
)

type HomeSize string

const (
	HomeStudio HomeSize = "studio"
	HomeSmall  HomeSize = "small"
	HomeMedium HomeSize = "medium"
	HomeLarge  HomeSize = "large"
)

type Frequency string

const (
	FrequencyOneTime  Frequency = "one-time"
	FrequencyMonthly  Frequency = "monthly"
	FrequencyBiWeekly Frequency = "bi-weekly"
	FrequencyWeekly   Frequency = "weekly"
)

// ServiceOptions is the set of choices that drive the price besides rooms.
type ServiceOptions struct {
	Category  Category  `json:"category"`
	Package   Package   `json:"package"`
	HomeSize  HomeSize  `json:"homeSize"`
	Frequency Frequency `json:"frequency"`
}

// PriceBreakdown is recomputed on every selection change and never stored.
// A zero value means "no price" (nothing selected or an unknown option).
type PriceBreakdown struct {
	FinalPrice        int64   `json:"finalPrice"`
	BasePrice         int64   `json:"basePrice"`
	RoomCount         int     `json:"roomCount"`
	PricePerRoom      int64   `json:"pricePerRoom"`
	PackageMultiplier float64 `json:"packageMultiplier"`
	SizeMultiplier    float64 `json:"sizeMultiplier"`
	FrequencyDiscount float64 `json:"frequencyDiscount"`
	Subtotal          float64 `json:"subtotal"`
	Discount          float64 `json:"discount"`
	Total             int64   `json:"total"`
}

// IsZero reports whether the breakdown carries no price.
func (p PriceBreakdown) IsZero() bool { return p == PriceBreakdown{} }

// Quote bundles everything the form shows next to the price.
type Quote struct {
	Price         PriceBreakdown       `json:"price"`
	Rooms         BackendRoomSelection `json:"rooms"`
	TotalRooms    int                  `json:"totalRooms"`
	EstimatedTime string               `json:"estimatedTime"`
	Turnaround    string               `json:"turnaround"`
}
