package mysql

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"hotel_booking/internal/domain"
)

//go:embed migrations/*.sql
var migrations embed.FS

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func valJSON(v []string) any {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return string(b)
}

// Repo is the catalog store: hotels, their rooms and the seed reviews aggregates derive from.
// The DSN must carry parseTime=true.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// Migrate applies the embedded schema. Statements are idempotent.
func (r *Repo) Migrate(ctx context.Context) error {
	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(files)
	for _, f := range files {
		b, err := migrations.ReadFile(f)
		if err != nil {
			return err
		}
		for _, stmt := range strings.Split(string(b), ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if _, err := r.db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migrate %s: %w", f, err)
			}
		}
	}
	return nil
}

// UpsertHotel writes a hotel and its rooms in one transaction. Aggregates are not stored;
// they are recomputed from reviews at boot.
func (r *Repo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, upsertHotelSQL,
		h.ID,
		h.Name,
		h.Location,
		h.BasePrice,
		valStr(h.Distance),
		valStr(h.Description),
		valStr(h.Category),
		valJSON(h.Amenities),
		valJSON(h.Images),
	); err != nil {
		return fmt.Errorf("upsert hotel %s: %w", h.ID, err)
	}
	for i, room := range h.Rooms {
		if _, err := tx.ExecContext(ctx, upsertRoomSQL, room.ID, h.ID, room.Type, room.Price, room.Capacity, i); err != nil {
			return fmt.Errorf("upsert room %s: %w", room.ID, err)
		}
	}
	return tx.Commit()
}

func (r *Repo) UpsertReviews(ctx context.Context, rs []domain.Review) error {
	if len(rs) == 0 {
		return nil
	}
	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*9)
	for _, rv := range rs {
		// created_at is COALESCE(?, CURRENT_TIMESTAMP) so feeds without timestamps still load.
		values = append(values, "(?,?,?,?,?,?,?,?,COALESCE(?, CURRENT_TIMESTAMP))")
		var created any
		if !rv.CreatedAt.IsZero() {
			created = rv.CreatedAt.UTC()
		}
		args = append(args,
			rv.ID,
			rv.HotelID,
			rv.UserID,
			valStr(rv.UserName),
			valStr(rv.BookingID),
			rv.Rating,
			valStr(rv.Comment),
			rv.HelpfulCount,
			created,
		)
	}
	sqlStr := insertReviewsPrefix + strings.Join(values, ",") + insertReviewsOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// LogMiss records a hotel the feed could not deliver, so the next run can be audited.
func (r *Repo) LogMiss(ctx context.Context, hotelID string, status int, reason string) error {
	_, err := r.db.ExecContext(ctx, insertMissSQL, hotelID, status, reason)
	return err
}

// LoadCatalog reads every hotel with its rooms and all seed reviews.
// Promotional records are not persisted here.
func (r *Repo) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	hotels, err := r.hotels(ctx)
	if err != nil {
		return domain.Catalog{}, err
	}
	if err := r.attachRooms(ctx, hotels); err != nil {
		return domain.Catalog{}, err
	}
	reviews, err := r.reviews(ctx)
	if err != nil {
		return domain.Catalog{}, err
	}
	return domain.Catalog{Hotels: hotels, Reviews: reviews}, nil
}

func (r *Repo) hotels(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		var h domain.Hotel
		var distance, desc, category sql.NullString
		var amenitiesJSON, imagesJSON []byte
		if err := rows.Scan(
			&h.ID,
			&h.Name,
			&h.Location,
			&h.BasePrice,
			&distance,
			&desc,
			&category,
			&amenitiesJSON,
			&imagesJSON,
		); err != nil {
			return nil, err
		}
		h.Distance = distance.String
		h.Description = desc.String
		h.Category = category.String
		_ = json.Unmarshal(amenitiesJSON, &h.Amenities)
		_ = json.Unmarshal(imagesJSON, &h.Images)
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) attachRooms(ctx context.Context, hotels []domain.Hotel) error {
	idx := make(map[string]int, len(hotels))
	for i, h := range hotels {
		idx[h.ID] = i
	}
	rows, err := r.db.QueryContext(ctx, listRoomsSQL)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var room domain.Room
		var hotelID string
		if err := rows.Scan(&room.ID, &hotelID, &room.Type, &room.Price, &room.Capacity); err != nil {
			return err
		}
		if i, ok := idx[hotelID]; ok {
			hotels[i].Rooms = append(hotels[i].Rooms, room)
		}
	}
	return rows.Err()
}

func (r *Repo) reviews(ctx context.Context) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, listReviewsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var rv domain.Review
		var userName, bookingID, comment sql.NullString
		var createdAt sql.NullTime
		if err := rows.Scan(
			&rv.ID,
			&rv.HotelID,
			&rv.UserID,
			&userName,
			&bookingID,
			&rv.Rating,
			&comment,
			&rv.HelpfulCount,
			&createdAt,
		); err != nil {
			return nil, err
		}
		rv.UserName = userName.String
		rv.BookingID = bookingID.String
		rv.Comment = comment.String
		if createdAt.Valid {
			rv.CreatedAt = createdAt.Time.UTC()
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
