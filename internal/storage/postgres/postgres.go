package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rekabarchive/memorial-service/internal/config"
	"github.com/rekabarchive/memorial-service/internal/storage"
	"github.com/rekabarchive/memorial-service/internal/types"
)

type Postgres struct {
	Db *sql.DB
}

func NewPostgres(cfg *config.Config) (*Postgres, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.PGSQL.Host, cfg.PGSQL.Port, cfg.PGSQL.User, cfg.PGSQL.Password, cfg.PGSQL.DBName, cfg.PGSQL.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		return nil, err
	}

	pg := &Postgres{Db: db}
	err = pg.CreateTables()
	if err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return pg, nil
}

func (p *Postgres) CreateTables() error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			password TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS user_roles (
			user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			role VARCHAR(50) NOT NULL CHECK (role IN ('admin', 'user'))
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS gallery_images (
			id UUID PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			category VARCHAR(100) NOT NULL,
			year INTEGER,
			file_path VARCHAR(512) NOT NULL,
			file_size BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS music_tracks (
			id UUID PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			genre VARCHAR(100) NOT NULL,
			year INTEGER,
			file_path VARCHAR(512) NOT NULL,
			file_size BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS tributes (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			message TEXT NOT NULL,
			approved BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		`,
	}

	for _, q := range queries {
		if _, err := p.Db.Exec(q); err != nil {
			return err
		}
	}

	return nil
}

// classify maps driver errors onto the storage package's closed error set.
// Class 28 is invalid authorization, 42501 is insufficient privilege.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNoRow
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code.Class() == "28" || pqErr.Code == "42501" {
			return fmt.Errorf("%w: %s", storage.ErrAuthRequired, pqErr.Message)
		}
	}
	return err
}

func (p *Postgres) CreateUser(email, hashedPassword string) (string, error) {
	id := uuid.NewString()
	query := `
	INSERT INTO users (id, email, password)
	VALUES ($1, $2, $3)
	`

	_, err := p.Db.Exec(query, id, email, hashedPassword)
	if err != nil {
		return "", classify(err)
	}

	return id, nil
}

func (p *Postgres) GetUserByEmail(email string) (string, string, error) {
	var userID string
	var hashedPassword string
	query := `
	SELECT id, password FROM users WHERE email = $1
	`

	err := p.Db.QueryRow(query, email).Scan(&userID, &hashedPassword)
	if err != nil {
		return "", "", classify(err)
	}

	return userID, hashedPassword, nil
}

func (p *Postgres) GetUserRole(userID string) (types.Role, error) {
	var role types.Role
	query := `
	SELECT role FROM user_roles WHERE user_id = $1
	`

	err := p.Db.QueryRow(query, userID).Scan(&role)
	if err != nil {
		return "", classify(err)
	}

	return role, nil
}

func (p *Postgres) ListGalleryImages() ([]types.GalleryImage, error) {
	query := `
	SELECT id, title, COALESCE(description, ''), category, year, file_path, file_size, created_at
	FROM gallery_images
	ORDER BY created_at DESC
	`

	rows, err := p.Db.Query(query)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	images := []types.GalleryImage{}
	for rows.Next() {
		var img types.GalleryImage
		err := rows.Scan(&img.ID, &img.Title, &img.Description, &img.Category,
			&img.Year, &img.FilePath, &img.FileSize, &img.CreatedAt)
		if err != nil {
			return nil, classify(err)
		}
		images = append(images, img)
	}

	return images, classify(rows.Err())
}

func (p *Postgres) CreateGalleryImage(image types.GalleryImage) (string, error) {
	id := uuid.NewString()
	query := `
	INSERT INTO gallery_images (id, title, description, category, year, file_path, file_size)
	VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
	`

	_, err := p.Db.Exec(query, id, image.Title, image.Description, image.Category,
		image.Year, image.FilePath, image.FileSize)
	if err != nil {
		return "", classify(err)
	}

	return id, nil
}

func (p *Postgres) ListMusicTracks() ([]types.MusicTrack, error) {
	query := `
	SELECT id, title, COALESCE(description, ''), genre, year, file_path, file_size, created_at
	FROM music_tracks
	ORDER BY created_at DESC
	`

	rows, err := p.Db.Query(query)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	tracks := []types.MusicTrack{}
	for rows.Next() {
		var track types.MusicTrack
		err := rows.Scan(&track.ID, &track.Title, &track.Description, &track.Genre,
			&track.Year, &track.FilePath, &track.FileSize, &track.CreatedAt)
		if err != nil {
			return nil, classify(err)
		}
		tracks = append(tracks, track)
	}

	return tracks, classify(rows.Err())
}

func (p *Postgres) CreateMusicTrack(track types.MusicTrack) (string, error) {
	id := uuid.NewString()
	query := `
	INSERT INTO music_tracks (id, title, description, genre, year, file_path, file_size)
	VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
	`

	_, err := p.Db.Exec(query, id, track.Title, track.Description, track.Genre,
		track.Year, track.FilePath, track.FileSize)
	if err != nil {
		return "", classify(err)
	}

	return id, nil
}

func (p *Postgres) ListApprovedTributes() ([]types.Tribute, error) {
	query := `
	SELECT id, name, message, approved, created_at
	FROM tributes
	WHERE approved = TRUE
	ORDER BY created_at DESC
	`

	rows, err := p.Db.Query(query)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	tributes := []types.Tribute{}
	for rows.Next() {
		var tr types.Tribute
		err := rows.Scan(&tr.ID, &tr.Name, &tr.Message, &tr.Approved, &tr.CreatedAt)
		if err != nil {
			return nil, classify(err)
		}
		tributes = append(tributes, tr)
	}

	return tributes, classify(rows.Err())
}

// CreateTribute inserts an unapproved tribute. Approval is flipped by manual
// moderation directly in the database, never through this service.
func (p *Postgres) CreateTribute(name, message string) (string, error) {
	id := uuid.NewString()
	query := `
	INSERT INTO tributes (id, name, message, approved)
	VALUES ($1, $2, $3, FALSE)
	`

	_, err := p.Db.Exec(query, id, name, message)
	if err != nil {
		return "", classify(err)
	}

	return id, nil
}
