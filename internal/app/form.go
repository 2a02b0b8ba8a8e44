package app

import "cleaning_booking/internal/domain"

// Form holds the selection being edited and the last quote computed for it.
// Every edit reprices; nothing else is cached. Not safe for concurrent use.
type Form struct {
	sel   domain.RoomSelection
	opts  domain.ServiceOptions
	quote domain.Quote
}

func NewForm(opts domain.ServiceOptions) *Form {
	f := &Form{sel: domain.RoomSelection{}, opts: opts}
	f.reprice()
	return f
}

// Increment adds one room of the given kind. Unknown labels are ignored, and
// so is a step past MaxRoomsPerLabel or MaxTotalRooms.
func (f *Form) Increment(label domain.RoomLabel) {
	if !KnownRoom(label) || f.sel[label] >= domain.MaxRoomsPerLabel {
		return
	}
	if TotalRooms(TranslateRooms(f.sel)) >= domain.MaxTotalRooms {
		return
	}
	f.sel[label]++
	f.reprice()
}

// Decrement removes one room of the given kind, never going below zero.
func (f *Form) Decrement(label domain.RoomLabel) {
	if f.sel[label] == 0 {
		return
	}
	f.sel[label]--
	f.reprice()
}

func (f *Form) SetOptions(opts domain.ServiceOptions) {
	f.opts = opts
	f.reprice()
}

func (f *Form) Quote() domain.Quote { return f.quote }

func (f *Form) Options() domain.ServiceOptions { return f.opts }

// Selection returns a copy of the current room counts.
func (f *Form) Selection() domain.RoomSelection {
	out := make(domain.RoomSelection, len(f.sel))
	for k, v := range f.sel {
		out[k] = v
	}
	return out
}

func (f *Form) reprice() { f.quote = BuildQuote(f.sel, f.opts) }
