// Package awsx implements the moderation pipeline's external
// collaborators against AWS: the S3 object store holding the policy
// document, the Comprehend toxicity classifier, and the Cognito
// identity provider. Each client is injected behind a minimal
// interface so tests run without AWS.
package awsx

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// ErrObjectNotFound is returned when the requested key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// S3API is the slice of the S3 client the object store uses.
type S3API interface {
	GetObjectWithContext(ctx aws.Context, input *s3.GetObjectInput, opts ...request.Option) (*s3.GetObjectOutput, error)
}

// ObjectStore fetches documents from S3. Satisfies policy.ObjectStore.
type ObjectStore struct {
	client S3API
}

// NewObjectStore creates an ObjectStore over an S3 client.
func NewObjectStore(client S3API) *ObjectStore {
	return &ObjectStore{client: client}
}

// NewObjectStoreFromSession creates an ObjectStore using the default S3
// client for the given session.
func NewObjectStoreFromSession(sess *session.Session) *ObjectStore {
	return NewObjectStore(s3.New(sess))
}

// GetObject reads one object fully into memory. Policy documents are
// small; callers needing streaming should not use this store.
func (o *ObjectStore) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := o.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, fmt.Errorf("s3://%s/%s: %w", bucket, key, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", bucket, key, err)
	}
	return data, nil
}
