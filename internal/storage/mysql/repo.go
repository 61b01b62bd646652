package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"

	"staywise/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	// Canonicalize category fields on the way in so the catalog is
	// uniform at rest; legacy rows are handled again on scan.
	if v, ok := domain.NormalizeHotelType(h.HotelType); ok {
		h.HotelType = v
	}
	if v, ok := domain.NormalizePriceRange(h.PriceRange); ok {
		h.PriceRange = v
	}
	if v, ok := domain.NormalizeGroupSize(h.GroupSize); ok {
		h.GroupSize = v
	}
	amen, _ := json.Marshal(h.Amenities)
	_, err := r.db.ExecContext(ctx, upsertHotelSQL,
		h.ID,
		h.Name,
		h.Description,
		h.HotelType,
		h.PriceRange,
		h.GroupSize,
		string(amen),
		h.Location.City,
		h.Location.Country,
		h.PricePerNight,
		h.AverageRating,
		h.ImageURL,
	)
	return err
}

func (r *Repo) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	row := r.db.QueryRowContext(ctx, getHotelSQL, id)
	h, err := scanHotel(row)
	if err == sql.ErrNoRows {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, err
}

func (r *Repo) ListHotels(ctx context.Context, f domain.HotelFilter) ([]domain.Hotel, error) {
	var (
		where []string
		args  []any
	)
	addIn := func(col string, vals []string) {
		if len(vals) == 0 {
			return
		}
		where = append(where, col+" IN ("+placeholders(len(vals))+")")
		for _, v := range vals {
			args = append(args, v)
		}
	}
	addIn("hotel_type", f.HotelTypes)
	addIn("price_range", f.PriceRanges)
	addIn("group_size", f.GroupSizes)

	for _, a := range f.AmenitiesAll {
		where = append(where, "JSON_CONTAINS(amenities, JSON_QUOTE(?))")
		args = append(args, a)
	}
	if len(f.AmenitiesAny) > 0 {
		ors := make([]string, len(f.AmenitiesAny))
		for i, a := range f.AmenitiesAny {
			ors[i] = "JSON_CONTAINS(amenities, JSON_QUOTE(?))"
			args = append(args, a)
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}
	if f.City != "" {
		where = append(where, "city = ?")
		args = append(args, f.City)
	}

	q := "SELECT" + hotelColumns + " FROM hotels"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	// Rating ties fall back to the catalog's natural ordering so
	// repeated calls are deterministic.
	q += " ORDER BY average_rating DESC, id"
	if f.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHotels(rows)
}

func (r *Repo) SearchHotels(ctx context.Context, query string) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, searchHotelsSQL,
		query, query, query, query, query, query, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHotels(rows)
}

func (r *Repo) ListLocations(ctx context.Context) ([]domain.LocationCount, error) {
	rows, err := r.db.QueryContext(ctx, listLocationsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.LocationCount
	for rows.Next() {
		var lc domain.LocationCount
		if err := rows.Scan(&lc.Location.City, &lc.Location.Country, &lc.Hotels); err != nil {
			return nil, err
		}
		out = append(out, lc)
	}
	return out, rows.Err()
}

// ---- scanning ----

type rowScanner interface{ Scan(dest ...any) error }

func scanHotel(row rowScanner) (domain.Hotel, error) {
	var (
		h             domain.Hotel
		amenitiesJSON []byte
		imageURL      sql.NullString
		rawType       string
		rawPrice      string
		rawGroup      string
	)
	if err := row.Scan(
		&h.ID,
		&h.Name,
		&h.Description,
		&rawType,
		&rawPrice,
		&rawGroup,
		&amenitiesJSON,
		&h.Location.City,
		&h.Location.Country,
		&h.PricePerNight,
		&h.AverageRating,
		&imageURL,
	); err != nil {
		return domain.Hotel{}, err
	}

	// Map raw category strings onto the canonical enums. Unmapped values
	// are a data-quality problem: log and leave the field empty so the
	// affected dimension is skipped downstream, never defaulted.
	h.HotelType = normalized(h.ID, domain.DimHotelType, rawType, domain.NormalizeHotelType)
	h.PriceRange = normalized(h.ID, domain.DimPriceRange, rawPrice, domain.NormalizePriceRange)
	h.GroupSize = normalized(h.ID, domain.DimGroupSize, rawGroup, domain.NormalizeGroupSize)

	_ = json.Unmarshal(amenitiesJSON, &h.Amenities)
	if imageURL.Valid {
		h.ImageURL = imageURL.String
	}
	return h, nil
}

func normalized(hotelID, dim, raw string, f func(string) (string, bool)) string {
	if raw == "" {
		return ""
	}
	v, ok := f(raw)
	if !ok {
		log.Warn().Str("hotel_id", hotelID).Str("dimension", dim).Str("value", raw).
			Msg("unmapped category value in catalog row")
		return ""
	}
	return v
}

func scanHotels(rows *sql.Rows) ([]domain.Hotel, error) {
	var out []domain.Hotel
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
