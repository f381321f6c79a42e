package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/fhuszti/videos-ms-go/internal/model"
	"github.com/fhuszti/videos-ms-go/internal/port"
	"github.com/fhuszti/videos-ms-go/internal/repository"
	"github.com/go-sql-driver/mysql"
)

const errDupEntry = 1062

type VideoUploadRepository struct {
	db *sql.DB
}

// compile-time check: *VideoUploadRepository must satisfy port.VideoUploadRepository
var _ port.VideoUploadRepository = (*VideoUploadRepository)(nil)

func NewVideoUploadRepository(db *sql.DB) *VideoUploadRepository {
	return &VideoUploadRepository{db: db}
}

func (r *VideoUploadRepository) Create(ctx context.Context, rec *model.UploadRecord) error {
	log.Printf("creating database record for upload #%s of user %q...", rec.ID, rec.UserID)

	const query = `
      INSERT INTO video_uploads
        (id, user_id, title, description, tags, category, privacy, file_path, file_size, mime_type)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.UserID, rec.Title,
		rec.Description, rec.Tags, rec.Category,
		rec.Privacy, rec.FilePath, rec.FileSize, rec.MimeType,
	)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == errDupEntry {
			return fmt.Errorf("%w: %s", repository.ErrDuplicate, myErr.Message)
		}
		return err
	}

	return nil
}
