package storage

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
	"github.com/minio/minio-go/v7"
)

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrObjectExists   = errors.New("the resource already exists")
	ErrBucketNotFound = errors.New("bucket not found")
	ErrUnauthorized   = errors.New("unauthorized storage access")
	ErrInternal       = errors.New("internal storage error")
)

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	return mapCode(resp.Code, resp.Message, err)
}

func mapS3Err(err error) error {
	if err == nil {
		return nil
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return mapCode(apiErr.ErrorCode(), apiErr.ErrorMessage(), err)
	}
	return fmt.Errorf("%w: %v", ErrInternal, err)
}

// mapCode keeps the backend message next to the sentinel so it can reach the user.
func mapCode(code, msg string, err error) error {
	var sentinel error
	switch code {
	case "NoSuchKey", "NotFound":
		sentinel = ErrObjectNotFound
	case "NoSuchBucket":
		sentinel = ErrBucketNotFound
	case "PreconditionFailed", "ConditionalRequestConflict":
		sentinel = ErrObjectExists
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		sentinel = ErrUnauthorized
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if msg == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, msg)
}
