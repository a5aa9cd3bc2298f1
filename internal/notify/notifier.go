package notify

import (
	"context"
	"log"

	"github.com/tirthraj07/booking-service/internal/kafka"
)

// Notifier delivers booking notifications to users. The current
// implementation only logs; a mail or push integration would plug in here.
type Notifier struct{}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Send(ctx context.Context, event kafka.BookingEvent) error {
	log.Printf("notify user %d: product %d booked with delivery partner %d (ref %s)",
		event.UserID, event.ProductID, event.PartnerID, event.Reference)
	return nil
}
