package app

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"cleaning_booking/internal/domain"
)

type categoryRate struct {
	base    int64
	perRoom int64
}

/********** coefficient tables **********/

var categoryRates = map[domain.Category]categoryRate{
	domain.CategoryStandard: {base: 8000, perRoom: 1200},
	domain.CategoryDeep:     {base: 15000, perRoom: 2000},
	domain.CategoryMoveIn:   {base: 13000, perRoom: 1550},
	domain.CategoryMoveOut:  {base: 14000, perRoom: 1600},
}

var packageMultipliers = map[domain.Package]decimal.Decimal{
	domain.PackageBasic:    decimal.RequireFromString("0.8"),
	domain.PackageStandard: decimal.RequireFromString("1"),
	domain.PackagePremium:  decimal.RequireFromString("1.4"),
	domain.PackageLuxury:   decimal.RequireFromString("1.8"),
}

var sizeMultipliers = map[domain.HomeSize]decimal.Decimal{
	domain.HomeStudio: decimal.RequireFromString("0.75"),
	domain.HomeSmall:  decimal.RequireFromString("1"),
	domain.HomeMedium: decimal.RequireFromString("1.5"),
	domain.HomeLarge:  decimal.RequireFromString("2"),
}

var frequencyDiscounts = map[domain.Frequency]decimal.Decimal{
	domain.FrequencyOneTime:  decimal.Zero,
	domain.FrequencyMonthly:  decimal.RequireFromString("0.05"),
	domain.FrequencyBiWeekly: decimal.RequireFromString("0.10"),
	domain.FrequencyWeekly:   decimal.RequireFromString("0.15"),
}

// ComputePrice prices a room selection for the chosen options.
//
// An option value missing from the tables yields a zero breakdown instead of an
// error, so a typo upstream shows up as a free cleaning. Callers that accept
// user input should go through ParseServiceOptions first.
func ComputePrice(sel domain.RoomSelection, opts domain.ServiceOptions) domain.PriceBreakdown {
	rate, okC := categoryRates[opts.Category]
	pkg, okP := packageMultipliers[opts.Package]
	size, okS := sizeMultipliers[opts.HomeSize]
	disc, okF := frequencyDiscounts[opts.Frequency]
	if !okC || !okP || !okS || !okF {
		return domain.PriceBreakdown{}
	}

	if ValidateSelection(sel) != nil {
		return domain.PriceBreakdown{}
	}
	rooms := TotalRooms(TranslateRooms(sel))
	if rooms <= 0 {
		return domain.PriceBreakdown{}
	}

	subtotal := decimal.NewFromInt(rate.base).
		Add(decimal.NewFromInt(rate.perRoom).Mul(decimal.NewFromInt(int64(rooms)))).
		Mul(pkg).
		Mul(size)
	discounted := subtotal.Mul(decimal.NewFromInt(1).Sub(disc))
	final, ok := roundPrice(discounted)
	if !ok {
		return domain.PriceBreakdown{}
	}

	return domain.PriceBreakdown{
		FinalPrice:        final,
		BasePrice:         rate.base,
		RoomCount:         rooms,
		PricePerRoom:      rate.perRoom,
		PackageMultiplier: pkg.InexactFloat64(),
		SizeMultiplier:    size.InexactFloat64(),
		FrequencyDiscount: disc.InexactFloat64(),
		Subtotal:          subtotal.InexactFloat64(),
		Discount:          subtotal.Sub(discounted).InexactFloat64(),
		Total:             final,
	}
}

var (
	minPrice = decimal.NewFromInt(math.MinInt64)
	maxPrice = decimal.NewFromInt(math.MaxInt64)
)

// roundPrice rounds half away from zero. ok is false when the result does not
// fit in an int64.
func roundPrice(d decimal.Decimal) (int64, bool) {
	r := d.Round(0)
	if r.LessThan(minPrice) || r.GreaterThan(maxPrice) {
		return 0, false
	}
	return r.IntPart(), true
}

// BuildQuote prices the selection and adds the duration and turnaround shown
// next to the price.
// An invalid selection gets no price and no duration.
func BuildQuote(sel domain.RoomSelection, opts domain.ServiceOptions) domain.Quote {
	rooms := TranslateRooms(sel)
	if ValidateSelection(sel) != nil {
		return domain.Quote{Rooms: rooms, Turnaround: Turnaround(opts.Category)}
	}
	total := TotalRooms(rooms)
	return domain.Quote{
		Price:         ComputePrice(sel, opts),
		Rooms:         rooms,
		TotalRooms:    total,
		EstimatedTime: EstimateDuration(total),
		Turnaround:    Turnaround(opts.Category),
	}
}

/********** boundary parsing **********/

// ParseServiceOptions checks raw option strings against the closed enums.
func ParseServiceOptions(category, pkg, homeSize, frequency string) (domain.ServiceOptions, error) {
	opts := domain.ServiceOptions{
		Category:  domain.Category(category),
		Package:   domain.Package(pkg),
		HomeSize:  domain.HomeSize(homeSize),
		Frequency: domain.Frequency(frequency),
	}
	return opts, ValidateOptions(opts)
}

// ValidateOptions rejects any option that has no coefficient.
func ValidateOptions(opts domain.ServiceOptions) error {
	if _, ok := categoryRates[opts.Category]; !ok {
		return domain.ValidationError(fmt.Sprintf("unknown cleaning category %q", opts.Category))
	}
	if _, ok := packageMultipliers[opts.Package]; !ok {
		return domain.ValidationError(fmt.Sprintf("unknown package %q", opts.Package))
	}
	if _, ok := sizeMultipliers[opts.HomeSize]; !ok {
		return domain.ValidationError(fmt.Sprintf("unknown home size %q", opts.HomeSize))
	}
	if _, ok := frequencyDiscounts[opts.Frequency]; !ok {
		return domain.ValidationError(fmt.Sprintf("unknown frequency %q", opts.Frequency))
	}
	return nil
}

// ValidateSelection rejects negative room counts, counts above
// MaxRoomsPerLabel and selections totalling more than MaxTotalRooms.
func ValidateSelection(sel domain.RoomSelection) error {
	total := 0
	for label, n := range sel {
		if n < 0 {
			return domain.ValidationError(fmt.Sprintf("room count for %q must not be negative", label))
		}
		if n > domain.MaxRoomsPerLabel {
			return domain.ValidationError(fmt.Sprintf("room count for %q must not exceed %d", label, domain.MaxRoomsPerLabel))
		}
		if KnownRoom(label) {
			total += n
		}
	}
	if total > domain.MaxTotalRooms {
		return domain.ValidationError(fmt.Sprintf("at most %d rooms can be booked at once", domain.MaxTotalRooms))
	}
	return nil
}
