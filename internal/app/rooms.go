package app

import "cleaning_booking/internal/domain"

// roomAliases is the single source of truth for form → API room names.
var roomAliases = map[domain.RoomLabel]domain.BackendRoomLabel{
	domain.RoomLivingRoom: domain.BackendLivingRoom,
	domain.RoomTerrace:    domain.BackendTerrace,
	domain.RoomBedroom:    domain.BackendBedrooms,
	domain.RoomBathroom:   domain.BackendBathrooms,
	domain.RoomKitchen:    domain.BackendKitchen,
	domain.RoomDining:     domain.BackendDiningRoom,
	domain.RoomGarage:     domain.BackendGarage,
}

// TranslateRooms renames form labels to API labels. Every API label is present
// in the result; labels the form cannot produce stay at 0 and unknown form
// labels are dropped.
func TranslateRooms(sel domain.RoomSelection) domain.BackendRoomSelection {
	out := make(domain.BackendRoomSelection, len(domain.BackendRoomLabels))
	for _, l := range domain.BackendRoomLabels {
		out[l] = 0
	}
	for label, n := range sel {
		if b, ok := roomAliases[label]; ok {
			out[b] += n
		}
	}
	return out
}

// TotalRooms sums every count in the API-shaped selection.
func TotalRooms(rooms domain.BackendRoomSelection) int {
	total := 0
	for _, n := range rooms {
		total += n
	}
	return total
}

// KnownRoom reports whether the form offers label.
func KnownRoom(label domain.RoomLabel) bool {
	_, ok := roomAliases[label]
	return ok
}
