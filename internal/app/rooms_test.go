package app_test

import (
	"testing"

	"cleaning_booking/internal/app"
	"cleaning_booking/internal/domain"
)

func TestTranslateRooms_RenamesAndFillsAllLabels(t *testing.T) {
	got := app.TranslateRooms(domain.RoomSelection{
		domain.RoomLivingRoom: 1,
		domain.RoomTerrace:    2,
		domain.RoomBedroom:    3,
		domain.RoomBathroom:   4,
		domain.RoomKitchen:    5,
		domain.RoomDining:     6,
		domain.RoomGarage:     7,
	})
	want := domain.BackendRoomSelection{
		domain.BackendLivingRoom:  1,
		domain.BackendTerrace:     2,
		domain.BackendBedrooms:    3,
		domain.BackendBathrooms:   4,
		domain.BackendKitchen:     5,
		domain.BackendDiningRoom:  6,
		domain.BackendGarage:      7,
		domain.BackendStudyOffice: 0,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d labels, want %d: %v", len(got), len(want), got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("%s: got %d want %d", k, got[k], v)
		}
	}
}

func TestTranslateRooms_PreservesSumAndDropsUnknown(t *testing.T) {
	sels := []domain.RoomSelection{
		{domain.RoomBedroom: 2},
		{domain.RoomKitchen: 1, domain.RoomBathroom: 1, domain.RoomGarage: 3},
		{domain.RoomDining: 2, "Attic": 4, "Study/Office": 9},
		{},
	}
	for _, sel := range sels {
		want := 0
		for label, n := range sel {
			if app.KnownRoom(label) {
				want += n
			}
		}
		if got := app.TotalRooms(app.TranslateRooms(sel)); got != want {
			t.Fatalf("%v: total %d, want %d", sel, got, want)
		}
	}
}

func TestTranslateRooms_OrderIndependent(t *testing.T) {
	a := domain.RoomSelection{}
	a[domain.RoomBedroom] = 2
	a[domain.RoomKitchen] = 1
	b := domain.RoomSelection{}
	b[domain.RoomKitchen] = 1
	b[domain.RoomBedroom] = 2

	ga, gb := app.TranslateRooms(a), app.TranslateRooms(b)
	for k := range ga {
		if ga[k] != gb[k] {
			t.Fatalf("%s differs: %d vs %d", k, ga[k], gb[k])
		}
	}
}
