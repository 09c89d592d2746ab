package redis

import (
	"strings"
	"time"

	"github.com/MrSnakeDoc/freenight/internal/domain"
)

const (
	// KeyPrefixHotel is the prefix for hotel keys
	KeyPrefixHotel = "freenight:hotel:"
	// KeyPrefixResult is the prefix for cached probe results
	KeyPrefixResult = "freenight:result:"
	// KeyAllHotels is the key for the set of all hotel codes
	KeyAllHotels = "freenight:hotels:all"
)

// HotelKey returns the Redis key for a hotel by code
func HotelKey(code string) string {
	return KeyPrefixHotel + strings.ToUpper(code)
}

// AllHotelsKey returns the key for the set of all hotel codes
func AllHotelsKey() string {
	return KeyAllHotels
}

// ResultKey returns the Redis key of a probe result.
// Hotel and group codes are case-insensitive on the booking site.
func ResultKey(hotelCode, groupCode string, date time.Time) string {
	return KeyPrefixResult + strings.ToUpper(hotelCode) + ":" + strings.ToUpper(groupCode) + ":" + date.Format(domain.DateLayout)
}
