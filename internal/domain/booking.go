package domain

import (
	"strconv"
	"time"
)

// Reminders selects how the customer wants to be reminded of the visit.
type Reminders struct {
	SMS   bool `json:"sms"`
	Email bool `json:"email"`
}

type CustomerInfo struct {
	Phone           string    `json:"phone"`
	Address         string    `json:"address"`
	Notes           string    `json:"notes"`
	SpecialRequests []string  `json:"specialRequests"`
	Reminders       Reminders `json:"reminders"`
}

// SpecialRequestIDs is the closed list of extras a customer can ask for.
var SpecialRequestIDs = map[string]struct{}{
	"pets":          {},
	"eco-products":  {},
	"inside-fridge": {},
	"inside-oven":   {},
	"windows":       {},
	"laundry":       {},
	"balcony":       {},
}

// Draft is what the form hands to the submission pipeline.
type Draft struct {
	Selection     RoomSelection  `json:"selection"`
	Options       ServiceOptions `json:"options"`
	Customer      CustomerInfo   `json:"customerInfo"`
	PreferredTime string         `json:"preferredTime,omitempty"`
}

type CleaningData struct {
	Category            Category             `json:"category"`
	Package             Package              `json:"package"`
	Items               BackendRoomSelection `json:"items"`
	HomeSize            HomeSize             `json:"homeSize"`
	Frequency           Frequency            `json:"frequency"`
	EstimatedPrice      int64                `json:"estimatedPrice"`
	EstimatedTime       string               `json:"estimatedTime"`
	PreferredTime       string               `json:"preferredTime"`
	SpecialInstructions string               `json:"specialInstructions"`
	Turnaround          string               `json:"turnaround"`
}

type BookingDetails struct {
	TotalRooms     int            `json:"totalRooms"`
	PriceBreakdown PriceBreakdown `json:"priceBreakdown"`
}

// BookingRequest is the body of the booking-creation call.
type BookingRequest struct {
	UserID         string         `json:"user_id"`
	CleaningData   CleaningData   `json:"cleaningData"`
	BookingDetails BookingDetails `json:"bookingDetails"`
	CustomerInfo   CustomerInfo   `json:"customerInfo"`
}

// BookingRecord is the API's representation of a booking; opaque to this service.
type BookingRecord map[string]any

// ID returns the record id as a string when the API sent one.
func (r BookingRecord) ID() string {
	switch v := r["id"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	if v, ok := r["_id"].(string); ok {
		return v
	}
	return ""
}

// BookingContext is left in scratch storage for the date/time step.
type BookingContext struct {
	Selection     RoomSelection  `json:"selection"`
	Options       ServiceOptions `json:"options"`
	Price         PriceBreakdown `json:"price"`
	Customer      CustomerInfo   `json:"customerInfo"`
	EstimatedTime string         `json:"estimatedTime"`
	Turnaround    string         `json:"turnaround"`
	BookingID     string         `json:"bookingId,omitempty"`
	SavedAt       time.Time      `json:"savedAt"`
}

// AttemptLog is one terminal submission attempt, kept for support queries.
type AttemptLog struct {
	ID         string         `json:"id"`
	UserID     *string        `json:"userId,omitempty"`
	Options    ServiceOptions `json:"options"`
	TotalRooms int            `json:"totalRooms"`
	FinalPrice int64          `json:"finalPrice"`
	State      string         `json:"state"`
	ErrorKind  *string        `json:"errorKind,omitempty"`
	Message    *string        `json:"message,omitempty"`
	BookingID  *string        `json:"bookingId,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}
