package scheduler

import (
	"context"

	"github.com/MrSnakeDoc/freenight/internal/domain"
)

// HotelStore is the persistent mirror of the catalog (Redis in production).
type HotelStore interface {
	GetAllHotels(ctx context.Context) ([]*domain.Hotel, error)
	SaveHotelsMany(ctx context.Context, hotels []*domain.Hotel) error
	DeleteHotel(ctx context.Context, code string) error
}
