// Package s3 implements remote.Store against any S3-compatible endpoint
// (AWS, MinIO). The store has no real folders, so a folder id is a key
// prefix ("MyNotesKeep/notes/") and folder existence is tracked with a
// zero-byte marker object at that prefix.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/dmitrijs2005/notedrive/internal/common"
	"github.com/dmitrijs2005/notedrive/internal/remote"
)

// Config carries the connection settings for the S3 backend.
type Config struct {
	Region       string
	BaseEndpoint string // empty for AWS proper; set for MinIO
	AccessKey    string
	SecretKey    string
	Bucket       string
}

// API is the subset of the S3 client the store uses.
type API interface {
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type Store struct {
	api    API
	bucket string
}

// NewStore builds a Store from connection settings.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "",
		)))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return NewStoreWithAPI(client, cfg.Bucket), nil
}

// NewStoreWithAPI wires a Store onto an existing client (tests).
func NewStoreWithAPI(api API, bucket string) *Store {
	return &Store{api: api, bucket: bucket}
}

func (s *Store) FindFolder(ctx context.Context, name, parentID string) (*remote.ObjectInfo, error) {
	prefix := folderPrefix(name, parentID)

	_, err := s.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(prefix),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("head folder marker %s: %w", prefix, err)
	}
	return &remote.ObjectInfo{Id: prefix, Name: name}, nil
}

func (s *Store) CreateFolder(ctx context.Context, name, parentID string) (string, error) {
	prefix := folderPrefix(name, parentID)

	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(prefix),
		Body:          bytes.NewReader(nil),
		ContentLength: aws.Int64(0),
	})
	if err != nil {
		return "", fmt.Errorf("create folder marker %s: %w", prefix, err)
	}
	return prefix, nil
}

func (s *Store) FindFile(ctx context.Context, name, parentID string) (*remote.ObjectInfo, error) {
	key := parentID + name

	head, err := s.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("head object %s: %w", key, err)
	}

	info := &remote.ObjectInfo{Id: key, Name: name}
	if head.LastModified != nil {
		info.ModifiedTime = *head.LastModified
	}
	return info, nil
}

func (s *Store) ListFiles(ctx context.Context, parentID string) ([]remote.ObjectInfo, error) {
	var result []remote.ObjectInfo
	var token *string

	for {
		out, err := s.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(parentID),
			Delimiter:         aws.String("/"),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("list objects %s: %w", parentID, err)
		}

		for _, obj := range out.Contents {
			key := aws.ToString(obj.Key)
			name := strings.TrimPrefix(key, parentID)
			if name == "" {
				continue // the folder marker itself
			}
			info := remote.ObjectInfo{Id: key, Name: name}
			if obj.LastModified != nil {
				info.ModifiedTime = *obj.LastModified
			}
			result = append(result, info)
		}

		if out.IsTruncated == nil || !*out.IsTruncated {
			break
		}
		token = out.NextContinuationToken
	}
	return result, nil
}

func (s *Store) CreateFile(ctx context.Context, parentID, name, mimeType string, data []byte) (string, error) {
	key := parentID + name
	if err := s.put(ctx, key, mimeType, data); err != nil {
		return "", err
	}
	return key, nil
}

func (s *Store) UpdateFile(ctx context.Context, id, mimeType string, data []byte) error {
	return s.put(ctx, id, mimeType, data)
}

func (s *Store) Download(ctx context.Context, id string) ([]byte, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(id),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("get object %s: %w", id, err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (s *Store) put(ctx context.Context, key, mimeType string, data []byte) error {
	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if mimeType != "" {
		in.ContentType = aws.String(mimeType)
	}
	if _, err := s.api.PutObject(ctx, in); err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

func folderPrefix(name, parentID string) string {
	return parentID + name + "/"
}

func isNotFound(err error) bool {
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	return errors.As(err, &notFound) || errors.As(err, &noSuchKey)
}
