package mysql

const upsertHotelSQL = `
INSERT INTO hotels
  (id, name, location, base_price, distance, description, category, amenities, images)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name        = VALUES(name),
  location    = VALUES(location),
  base_price  = VALUES(base_price),
  distance    = VALUES(distance),
  description = VALUES(description),
  category    = VALUES(category),
  amenities   = VALUES(amenities),
  images      = VALUES(images),
  updated_at  = CURRENT_TIMESTAMP
`

// Rooms are immutable once created; a re-seed may only fix their attributes.
const upsertRoomSQL = `
INSERT INTO rooms
  (id, hotel_id, type, price, capacity, position)
VALUES
  (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  type     = VALUES(type),
  price    = VALUES(price),
  capacity = VALUES(capacity),
  position = VALUES(position)
`

const insertReviewsPrefix = "INSERT INTO reviews\n  (id, hotel_id, user_id, user_name, booking_id, rating, `comment`, helpful_count, created_at)\nVALUES "

// Seed reviews are keyed by id; a re-seed refreshes text and helpful counts, never the hotel binding.
const insertReviewsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  user_name     = VALUES(user_name),\n" +
	"  rating        = VALUES(rating),\n" +
	"  `comment`     = VALUES(`comment`),\n" +
	"  helpful_count = GREATEST(VALUES(helpful_count), reviews.helpful_count)\n"

const insertMissSQL = `
INSERT INTO seed_misses (hotel_id, http_status, reason)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE http_status = VALUES(http_status), reason = VALUES(reason), seen_at = CURRENT_TIMESTAMP
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Load order is insertion order, which the catalog keeps for deterministic scans.
const listHotelsSQL = `
SELECT id, name, location, base_price, distance, description, category, amenities, images
FROM hotels
ORDER BY seq
`

const listRoomsSQL = `
SELECT id, hotel_id, type, price, capacity
FROM rooms
ORDER BY hotel_id, position
`

const listReviewsSQL = "SELECT id, hotel_id, user_id, user_name, booking_id, rating, `comment`, helpful_count, created_at\n" +
	"FROM reviews\nORDER BY created_at, id\n"
