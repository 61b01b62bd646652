package mysql

const upsertHotelSQL = `
INSERT INTO hotels
  (id, name, description, hotel_type, price_range, group_size, amenities,
   city, country, price_per_night, average_rating, image_url)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name            = VALUES(name),
  description     = VALUES(description),
  hotel_type      = VALUES(hotel_type),
  price_range     = VALUES(price_range),
  group_size      = VALUES(group_size),
  amenities       = VALUES(amenities),
  city            = VALUES(city),
  country         = VALUES(country),
  price_per_night = VALUES(price_per_night),
  average_rating  = VALUES(average_rating),
  image_url       = VALUES(image_url),
  updated_at      = CURRENT_TIMESTAMP
`

const hotelColumns = `
  id, name, description, hotel_type, price_range, group_size, amenities,
  city, country, price_per_night, average_rating, image_url`

const getHotelSQL = `SELECT` + hotelColumns + ` FROM hotels WHERE id = ?`

const searchHotelsSQL = `
SELECT` + hotelColumns + `
FROM hotels
WHERE name LIKE CONCAT('%', ?, '%')
   OR city = ?
   OR country = ?
   OR JSON_CONTAINS(amenities, JSON_QUOTE(?))
   OR hotel_type = ?
   OR price_range = ?
   OR group_size = ?
ORDER BY average_rating DESC, id
`

const listLocationsSQL = `
SELECT city, country, COUNT(*) AS hotels
FROM hotels
GROUP BY city, country
ORDER BY hotels DESC, city
`

const insertUserSQL = `
INSERT INTO users
  (id, name, email, password_hash, city, country,
   pref_hotel_type, pref_price_range, pref_group_size, pref_amenities)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const userColumns = `
  id, name, email, password_hash, city, country,
  pref_hotel_type, pref_price_range, pref_group_size, pref_amenities`

const getUserSQL = `SELECT` + userColumns + ` FROM users WHERE id = ?`

const getUserByEmailSQL = `SELECT` + userColumns + ` FROM users WHERE email = ?`

const updatePreferencesSQL = `
UPDATE users SET
  pref_hotel_type  = ?,
  pref_price_range = ?,
  pref_group_size  = ?,
  pref_amenities   = ?,
  updated_at       = CURRENT_TIMESTAMP
WHERE id = ?
`

// Note: COUNT is a function name; keep the column quoted everywhere.
// The upsert-increment is atomic at the store level, so concurrent
// bookings for the same user cannot lose an update.
const insertCounterPrefix = "INSERT INTO user_counters (user_id, dimension, value, `count`)\nVALUES "

const insertCounterOnDup = " ON DUPLICATE KEY UPDATE `count` = `count` + 1"

const getCountersSQL = "SELECT dimension, value, `count` FROM user_counters WHERE user_id = ?"

const insertBookingSQL = `
INSERT INTO bookings
  (id, user_id, hotel_id, check_in, check_out, nights, price,
   confirmation_number, guest_name, guest_email, guest_phone, services)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const bookingColumns = `
  id, user_id, hotel_id, check_in, check_out, nights, price,
  confirmation_number, guest_name, guest_email, guest_phone, services, created_at`

const getBookingSQL = `SELECT` + bookingColumns + ` FROM bookings WHERE id = ?`

const listUpcomingSQL = `
SELECT` + bookingColumns + `
FROM bookings
WHERE user_id = ? AND check_out >= ?
ORDER BY check_in, id
`

const listPastSQL = `
SELECT` + bookingColumns + `
FROM bookings
WHERE user_id = ? AND check_out < ?
ORDER BY check_in DESC, id
`

const deleteBookingSQL = `DELETE FROM bookings WHERE id = ?`
