// Package booking builds the reservation-page URLs that are probed for voucher rates.
package booking

import (
	"strings"
	"time"

	"github.com/MrSnakeDoc/freenight/internal/domain"
)

const (
	// ReservationURL is the booking site's room-selection page.
	ReservationURL = "https://www.hilton.com/en/book/reservation/rooms/"

	// CampaignID is the campaign-tracking token the program's own landing page appends.
	// The site keys the voucher rate display on it, so it never changes between requests.
	CampaignID = "OH,MB,APACAMEXKrisFlyerComplimentaryNight,MULTIBR,OfferCTA,Offer,Book"

	// Adults is fixed: the voucher covers one room for one night.
	Adults = "1"
)

// BuildURL returns the reservation URL for a one-night stay starting on arrival.
//
// hotelCode and groupCode are copied verbatim; callers validate them.
// The departure date is the next calendar day in arrival's own location.
func BuildURL(hotelCode string, arrival time.Time, groupCode string) string {
	var b strings.Builder
	b.Grow(len(ReservationURL) + len(CampaignID) + 128)

	b.WriteString(ReservationURL)
	b.WriteString("?ctyhocn=")
	b.WriteString(hotelCode)
	b.WriteString("&arrivalDate=")
	b.WriteString(arrival.Format(domain.DateLayout))
	b.WriteString("&departureDate=")
	b.WriteString(domain.NextDay(arrival).Format(domain.DateLayout))
	b.WriteString("&groupCode=")
	b.WriteString(groupCode)
	b.WriteString("&room1NumAdults=")
	b.WriteString(Adults)
	b.WriteString("&cid=")
	b.WriteString(CampaignID)

	return b.String()
}
