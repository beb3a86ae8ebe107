package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"donor-finder-api/internal/geo"
	"donor-finder-api/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `
	id, name, email, password_hash, blood_group, age, gender, phone_number,
	profession, present_address, permanent_address, avatar,
	latitude, longitude, is_public, status, last_active, last_donation_date, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.BloodGroup,
		&u.Age,
		&u.Gender,
		&u.PhoneNumber,
		&u.Profession,
		&u.PresentAddress,
		&u.PermanentAddress,
		&u.Avatar,
		&u.Latitude,
		&u.Longitude,
		&u.IsPublic,
		&u.Status,
		&u.LastActive,
		&u.LastDonationDate,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user and fills in its ID and creation time.
func (r *Repository) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Status == "" {
		u.Status = models.StatusInactive
	}

	sql := `
		INSERT INTO users (
			id, name, email, password_hash, blood_group, age, gender, phone_number,
			profession, present_address, permanent_address, avatar,
			latitude, longitude, is_public, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, sql,
		u.ID,
		u.Name,
		strings.ToLower(u.Email),
		u.PasswordHash,
		u.BloodGroup,
		u.Age,
		u.Gender,
		u.PhoneNumber,
		u.Profession,
		u.PresentAddress,
		u.PermanentAddress,
		u.Avatar,
		u.Latitude,
		u.Longitude,
		u.IsPublic,
		u.Status,
	).Scan(&u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrEmailTaken
		}
		return fmt.Errorf("repository: failed to insert user: %w", err)
	}

	return nil
}

// GetUserByID loads a user by primary key.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to get user: %w", err)
	}
	return u, nil
}

// GetUserByEmail loads a user by email, case-insensitively.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email)))
	if err != nil {
		if isNoRows(err) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to get user by email: %w", err)
	}
	return u, nil
}

// UpdateProfile applies the non-nil fields of upd and returns the updated user.
func (r *Repository) UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error) {
	sql := `
		UPDATE users SET
			name        = COALESCE($2::text, name),
			blood_group = COALESCE($3::text, blood_group),
			age         = COALESCE($4::integer, age),
			latitude    = COALESCE($5::double precision, latitude),
			longitude   = COALESCE($6::double precision, longitude)
		WHERE id = $1
		RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRow(ctx, sql, id, upd.Name, upd.BloodGroup, upd.Age, upd.Latitude, upd.Longitude))
	if err != nil {
		if isNoRows(err) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to update profile: %w", err)
	}
	return u, nil
}

// RecordLogin marks the user active at the given time and, when coord is
// not nil, moves them to the new location.
func (r *Repository) RecordLogin(ctx context.Context, id string, coord *geo.Coordinate, at time.Time) error {
	var lat, lon *float64
	if coord != nil {
		lat, lon = &coord.Latitude, &coord.Longitude
	}

	sql := `
		UPDATE users SET
			latitude    = COALESCE($2::double precision, latitude),
			longitude   = COALESCE($3::double precision, longitude),
			status      = $4,
			last_active = $5
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, sql, id, lat, lon, models.StatusActive, at)
	if err != nil {
		return fmt.Errorf("repository: failed to record login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// UpdateStatus stores the user's presence status and last activity time.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status models.Status, at time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET status = $2, last_active = $3 WHERE id = $1`, id, status, at)
	if err != nil {
		return fmt.Errorf("repository: failed to update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// SearchDonors returns the public users other than requesterID matching
// the filter, in registration order. Ranking by distance is left to the caller.
func (r *Repository) SearchDonors(ctx context.Context, requesterID string, f models.DonorFilter) ([]models.Donor, error) {
	sql := `
		SELECT
			id,
			name,
			blood_group,
			age,
			profession,
			present_address,
			latitude,
			longitude,
			status,
			last_active,
			last_donation_date
		FROM users
		WHERE id <> $1
			AND is_public
			AND (
				$2::text = ''
				OR name ILIKE $3
				OR present_address ILIKE $3
				OR permanent_address ILIKE $3
				OR profession ILIKE $3
			)
			AND ($4::text = '' OR blood_group = $4)
			AND age BETWEEN $5 AND $6
		ORDER BY created_at, id
	`

	query := strings.TrimSpace(f.Query)
	pattern := "%" + escapeLike(query) + "%"

	rows, err := r.db.Query(ctx, sql, requesterID, query, pattern, f.BloodGroup, f.MinAge, f.MaxAge)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute donor search: %w", err)
	}
	defer rows.Close()

	donors := []models.Donor{}
	for rows.Next() {
		var d models.Donor
		err := rows.Scan(
			&d.ID,
			&d.Name,
			&d.BloodGroup,
			&d.Age,
			&d.Profession,
			&d.PresentAddress,
			&d.Latitude,
			&d.Longitude,
			&d.Status,
			&d.LastActive,
			&d.LastDonationDate,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan donor: %w", err)
		}
		donors = append(donors, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return donors, nil
}

// GetPublicProfile loads the public view of a user. Private profiles are reported as not found.
func (r *Repository) GetPublicProfile(ctx context.Context, id string) (*models.PublicProfile, error) {
	sql := `
		SELECT
			id, name, blood_group, age, gender, phone_number, profession,
			present_address, avatar, status, last_active, last_donation_date
		FROM users
		WHERE id = $1 AND is_public
	`

	var p models.PublicProfile
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&p.ID,
		&p.Name,
		&p.BloodGroup,
		&p.Age,
		&p.Gender,
		&p.PhoneNumber,
		&p.Profession,
		&p.PresentAddress,
		&p.Avatar,
		&p.Status,
		&p.LastActive,
		&p.LastDonationDate,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to get public profile: %w", err)
	}

	return &p, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
