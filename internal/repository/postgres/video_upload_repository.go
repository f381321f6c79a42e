package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/fhuszti/videos-ms-go/internal/model"
	"github.com/fhuszti/videos-ms-go/internal/port"
	"github.com/fhuszti/videos-ms-go/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// execer is the subset of *pgxpool.Pool the repository needs.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type VideoUploadRepository struct {
	db execer
}

// compile-time check: *VideoUploadRepository must satisfy port.VideoUploadRepository
var _ port.VideoUploadRepository = (*VideoUploadRepository)(nil)

func NewVideoUploadRepository(db execer) *VideoUploadRepository {
	return &VideoUploadRepository{db: db}
}

func (r *VideoUploadRepository) Create(ctx context.Context, rec *model.UploadRecord) error {
	log.Printf("creating database record for upload #%s of user %q...", rec.ID, rec.UserID)

	const query = `
      INSERT INTO video_uploads
        (id, user_id, title, description, tags, category, privacy, file_path, file_size, mime_type)
      VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `
	tags := []string(rec.Tags)
	if tags == nil {
		tags = []string{}
	}
	var category *string
	if rec.Category != nil {
		c := string(*rec.Category)
		category = &c
	}

	_, err := r.db.Exec(ctx, query,
		rec.ID.String(), rec.UserID, rec.Title,
		rec.Description, tags, category,
		string(rec.Privacy), rec.FilePath, rec.FileSize, rec.MimeType,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", repository.ErrDuplicate, pgErr.ConstraintName)
		}
		return err
	}

	return nil
}
