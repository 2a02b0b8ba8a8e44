// cmd/quote prints the price a booking form would show for a room selection.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"cleaning_booking/internal/adapters/observability"
	"cleaning_booking/internal/app"
	"cleaning_booking/internal/domain"
)

func main() {
	category := flag.String("category", string(domain.CategoryStandard), "cleaning category")
	pkg := flag.String("package", string(domain.PackageStandard), "service package")
	size := flag.String("size", string(domain.HomeSmall), "home size (studio, small, medium, large)")
	freq := flag.String("frequency", string(domain.FrequencyOneTime), "frequency (one-time, monthly, bi-weekly, weekly)")
	rooms := flag.String("rooms", "", `room counts, e.g. "Bedroom=2,Bathroom=1"`)
	flag.Parse()

	log.Logger = observability.NewLogger("dev", os.Getenv("LOG_LEVEL"))

	opts, err := app.ParseServiceOptions(*category, *pkg, *size, *freq)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid options")
	}
	sel, err := parseRooms(*rooms)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid rooms")
	}

	form := app.NewForm(opts)
	for label, n := range sel {
		for i := 0; i < n; i++ {
			form.Increment(label)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(form.Quote()); err != nil {
		log.Fatal().Err(err).Msg("encode quote")
	}
}

// parseRooms reads "Label=N" pairs separated by commas.
func parseRooms(s string) (domain.RoomSelection, error) {
	sel := domain.RoomSelection{}
	if strings.TrimSpace(s) == "" {
		return sel, nil
	}
	for _, part := range strings.Split(s, ",") {
		label, count, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("room %q: want Label=N", part)
		}
		n, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil || n < 0 || n > domain.MaxRoomsPerLabel {
			return nil, fmt.Errorf("room %q: count must be an integer between 0 and %d", part, domain.MaxRoomsPerLabel)
		}
		l := domain.RoomLabel(strings.TrimSpace(label))
		if !app.KnownRoom(l) {
			return nil, fmt.Errorf("unknown room %q", l)
		}
		sel[l] += n
	}
	if err := app.ValidateSelection(sel); err != nil {
		return nil, err
	}
	return sel, nil
}
