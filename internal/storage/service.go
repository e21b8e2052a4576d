package storage

import (
	"context"
	"errors"
	"io"
	"time"

	"ThesisTrack/internal/auth"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
)

// Service stores manuscript files in GridFS and records the upload on the
// uploader's profile.
type Service struct {
	bucket *gridfs.Bucket
	users  *auth.UserService
}

func NewService(bucket *gridfs.Bucket, users *auth.UserService) *Service {
	return &Service{bucket: bucket, users: users}
}

// Upload streams the file into the bucket under a collision-proof object key
// and attaches the resulting file record to the uploader's profile. The
// returned record carries the download URL served by this application.
func (s *Service) Upload(ctx context.Context, uploaderUID, fileName string, source io.Reader) (*auth.FileRecord, error) {
	if fileName == "" {
		return nil, errors.New("file name is required")
	}
	objectKey := uuid.NewString() + "-" + fileName
	fileID, err := s.bucket.UploadFromStream(objectKey, source)
	if err != nil {
		return nil, err
	}

	record := auth.FileRecord{
		FileURL:    "/files/" + fileID.Hex(),
		FileName:   fileName,
		UploadedAt: time.Now(),
	}
	if err := s.users.AttachFile(ctx, uploaderUID, record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Download streams a stored manuscript to the writer.
func (s *Service) Download(fileID primitive.ObjectID, dest io.Writer) error {
	_, err := s.bucket.DownloadToStream(fileID, dest)
	return err
}
