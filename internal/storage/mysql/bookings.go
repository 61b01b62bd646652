package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"staywise/internal/domain"
)

func (r *Repo) CreateBooking(ctx context.Context, b domain.Booking) error {
	services, _ := json.Marshal(b.Services)
	_, err := r.db.ExecContext(ctx, insertBookingSQL,
		b.ID,
		b.UserID,
		b.HotelID,
		b.CheckIn,
		b.CheckOut,
		b.Nights,
		b.Price,
		b.ConfirmationNumber,
		b.GuestName,
		b.GuestEmail,
		b.GuestPhone,
		string(services),
	)
	return err
}

func (r *Repo) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, getBookingSQL, id))
	if err == sql.ErrNoRows {
		return domain.Booking{}, domain.ErrNotFound
	}
	return b, err
}

func (r *Repo) ListUpcoming(ctx context.Context, userID string) ([]domain.Booking, error) {
	return r.listBookings(ctx, listUpcomingSQL, userID)
}

func (r *Repo) ListPast(ctx context.Context, userID string) ([]domain.Booking, error) {
	return r.listBookings(ctx, listPastSQL, userID)
}

func (r *Repo) listBookings(ctx context.Context, q, userID string) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, userID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repo) DeleteBooking(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteBookingSQL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanBooking(row rowScanner) (domain.Booking, error) {
	var (
		b        domain.Booking
		services []byte
	)
	if err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.HotelID,
		&b.CheckIn,
		&b.CheckOut,
		&b.Nights,
		&b.Price,
		&b.ConfirmationNumber,
		&b.GuestName,
		&b.GuestEmail,
		&b.GuestPhone,
		&services,
		&b.CreatedAt,
	); err != nil {
		return domain.Booking{}, err
	}
	_ = json.Unmarshal(services, &b.Services)
	return b, nil
}
