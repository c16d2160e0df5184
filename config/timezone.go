package config

import (
	"log"
	"os"
	"time"
)

// The shop reports in one local timezone. Payments are stored as UTC
// instants; every day/week/month boundary is computed in this location.
const defaultTimezone = "America/Argentina/Buenos_Aires"

var location *time.Location

func LoadTimezone() *time.Location {
	name := os.Getenv("SHOP_TIMEZONE")
	if name == "" {
		name = defaultTimezone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Invalid SHOP_TIMEZONE %q, falling back to UTC: %v", name, err)
		loc = time.UTC
	}

	location = loc
	return loc
}

func Timezone() *time.Location {
	if location == nil {
		return LoadTimezone()
	}
	return location
}
