package objectstore

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	cos "github.com/tencentyun/cos-go-sdk-v5"
)

const defaultTimeout = 60 * time.Second

// Client is the subset of the COS API the object-storage repositories use.
type Client interface {
	ListObjects(ctx context.Context, prefix, marker string) (*cos.BucketGetResult, error)
	PutObject(ctx context.Context, name string, content io.Reader, mimeType string) error
	GetObject(ctx context.Context, name string) (io.ReadCloser, error)
	DeleteObject(ctx context.Context, name string) error
}

type cosClient struct {
	*cos.Client
}

// NewClient builds an authenticated COS client for bucketURL.
func NewClient(bucketURL, secretID, secretKey string) (Client, error) {
	u, err := url.Parse(bucketURL)
	if err != nil {
		return nil, err
	}
	httpClient := &http.Client{
		Timeout: defaultTimeout,
		Transport: &cos.AuthorizationTransport{
			SecretID:  secretID,
			SecretKey: secretKey,
		},
	}
	return WrapClient(cos.NewClient(&cos.BaseURL{BucketURL: u}, httpClient)), nil
}

// WrapClient adapts an existing SDK client, e.g. one with a custom transport.
func WrapClient(client *cos.Client) Client {
	return &cosClient{Client: client}
}

func (c *cosClient) ListObjects(ctx context.Context, prefix, marker string) (*cos.BucketGetResult, error) {
	result, _, err := c.Client.Bucket.Get(ctx, &cos.BucketGetOptions{Prefix: prefix, Marker: marker})
	return result, err
}

func (c *cosClient) PutObject(ctx context.Context, name string, content io.Reader, mimeType string) error {
	opt := &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{
			ContentType: mimeType,
		},
	}
	_, err := c.Client.Object.Put(ctx, name, content, opt)
	return err
}

func (c *cosClient) GetObject(ctx context.Context, name string) (io.ReadCloser, error) {
	resp, err := c.Client.Object.Get(ctx, name, nil)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (c *cosClient) DeleteObject(ctx context.Context, name string) error {
	_, err := c.Client.Object.Delete(ctx, name)
	return err
}
