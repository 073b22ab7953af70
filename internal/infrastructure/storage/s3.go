package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/jhoicas/estatedesk-api/internal/domain/filing"
)

var _ filing.Storage = (*S3)(nil)

// S3Options conexión al bucket de documentos.
type S3Options struct {
	Endpoint     string // vacío = endpoint de AWS
	Bucket       string
	Region       string
	Credential   aws.Credentials
	LinkExpireIn time.Duration
}

// S3 almacenamiento en un bucket compatible con S3; las URLs son GET prefirmados.
type S3 struct {
	options   S3Options
	s3cli     *s3.Client
	s3presign *s3.PresignClient
}

// NewS3 construye el cliente S3 y su cliente de prefirmado.
func NewS3(ctx context.Context, opts S3Options) (*S3, error) {
	loaders := []func(*config.LoadOptions) error{
		config.WithRegion(opts.Region),
	}
	if opts.Credential.AccessKeyID != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.StaticCredentialsProvider{Value: opts.Credential},
		))
	}
	if opts.Endpoint != "" {
		loaders = append(loaders, config.WithEndpointResolverWithOptions(
			aws.EndpointResolverWithOptionsFunc(
				func(service, region string, options ...interface{}) (aws.Endpoint, error) {
					return aws.Endpoint{URL: opts.Endpoint, HostnameImmutable: true}, nil
				},
			),
		))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	s3cli := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.Region = opts.Region
		o.UsePathStyle = opts.Endpoint != ""
	})
	if opts.LinkExpireIn <= 0 {
		opts.LinkExpireIn = 15 * time.Minute
	}
	return &S3{options: opts, s3cli: s3cli, s3presign: s3.NewPresignClient(s3cli)}, nil
}

func (s *S3) Put(ctx context.Context, p string, r io.Reader, size int64, contentType string) error {
	_, err := s.s3cli.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.options.Bucket),
		Key:           aws.String(p),
		Body:          r,
		ContentLength: size,
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

func (s *S3) Exists(ctx context.Context, p string) (bool, error) {
	_, err := s.s3cli.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.options.Bucket),
		Key:    aws.String(p),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, fmt.Errorf("head object: %w", err)
	}
	return true, nil
}

func (s *S3) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	out, err := s.s3cli.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.options.Bucket),
		Key:    aws.String(p),
	})
	if err != nil {
		return nil, fmt.Errorf("get object: %w", err)
	}
	return out.Body, nil
}

// URL GET prefirmado válido por LinkExpireIn.
func (s *S3) URL(ctx context.Context, p string) (string, error) {
	req, err := s.s3presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.options.Bucket),
		Key:    aws.String(p),
	}, s3.WithPresignExpires(s.options.LinkExpireIn))
	if err != nil {
		return "", fmt.Errorf("presign: %w", err)
	}
	return req.URL, nil
}

func (s *S3) Delete(ctx context.Context, p string) error {
	_, err := s.s3cli.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.options.Bucket),
		Key:    aws.String(p),
	})
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}
