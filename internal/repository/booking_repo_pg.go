package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tirthraj07/booking-service/internal/domain"
)

type BookingRepository interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, booking *domain.Booking) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingsSchema = `CREATE TABLE IF NOT EXISTS bookings (
	user_id BIGINT NOT NULL,
	product_id BIGINT NOT NULL,
	partner_id BIGINT NOT NULL
)`

// EnsureSchema creates the bookings table if it does not exist. Run once at
// startup; a failure here means the process cannot serve requests.
func (r *PGBookingRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, bookingsSchema)
	return err
}

func (r *PGBookingRepository) Insert(ctx context.Context, booking *domain.Booking) error {
	_, err := r.db.Exec(ctx, `INSERT INTO bookings (user_id, product_id, partner_id) VALUES ($1, $2, $3)`,
		booking.UserID, booking.ProductID, booking.PartnerID)
	return err
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT user_id, product_id, partner_id FROM bookings WHERE user_id=$1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.UserID, &b.ProductID, &b.PartnerID); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
