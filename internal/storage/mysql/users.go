package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"staywise/internal/domain"
)

const mysqlErrDupEntry = 1062

func (r *Repo) CreateUser(ctx context.Context, u domain.User) error {
	prefAmen, _ := json.Marshal(u.Preferences.Amenities)
	_, err := r.db.ExecContext(ctx, insertUserSQL,
		u.ID,
		u.Name,
		strings.ToLower(u.Email),
		u.PasswordHash,
		u.City,
		u.Country,
		u.Preferences.HotelType,
		u.Preferences.PriceRange,
		u.Preferences.GroupSize,
		string(prefAmen),
	)
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlErrDupEntry {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *Repo) GetUser(ctx context.Context, id string) (domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, getUserSQL, id))
}

func (r *Repo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, getUserByEmailSQL, strings.ToLower(email)))
}

func (r *Repo) scanUser(row *sql.Row) (domain.User, error) {
	var (
		u        domain.User
		prefAmen []byte
	)
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.City,
		&u.Country,
		&u.Preferences.HotelType,
		&u.Preferences.PriceRange,
		&u.Preferences.GroupSize,
		&prefAmen,
	)
	if err == sql.ErrNoRows {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	_ = json.Unmarshal(prefAmen, &u.Preferences.Amenities)
	return u, nil
}

func (r *Repo) UpdatePreferences(ctx context.Context, userID string, p domain.Preferences) error {
	prefAmen, _ := json.Marshal(p.Amenities)
	res, err := r.db.ExecContext(ctx, updatePreferencesSQL,
		p.HotelType, p.PriceRange, p.GroupSize, string(prefAmen), userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// 0 rows can mean either "no such user" or "no change"; confirm.
		if _, err := r.GetUser(ctx, userID); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) IncrementCounters(ctx context.Context, userID string, keys []domain.CounterKey) error {
	if len(keys) == 0 {
		return nil
	}
	values := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys)*4)
	for _, k := range keys {
		values = append(values, "(?,?,?,1)")
		args = append(args, userID, k.Dimension, k.Value)
	}
	sqlStr := insertCounterPrefix + strings.Join(values, ",") + insertCounterOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *Repo) GetCounters(ctx context.Context, userID string) (domain.Counters, error) {
	// All four tables come back initialized even when the user has no
	// rows yet; absent counters read as zero.
	c := domain.Counters{
		HotelType:  map[string]int{},
		PriceRange: map[string]int{},
		GroupSize:  map[string]int{},
		Amenities:  map[string]int{},
	}
	rows, err := r.db.QueryContext(ctx, getCountersSQL, userID)
	if err != nil {
		return domain.Counters{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var dim, value string
		var count int
		if err := rows.Scan(&dim, &value, &count); err != nil {
			return domain.Counters{}, err
		}
		switch dim {
		case domain.DimHotelType:
			c.HotelType[value] = count
		case domain.DimPriceRange:
			c.PriceRange[value] = count
		case domain.DimGroupSize:
			c.GroupSize[value] = count
		case domain.DimAmenity:
			c.Amenities[value] = count
		}
	}
	return c, rows.Err()
}
