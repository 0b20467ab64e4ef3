package s3storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubClients(t *testing.T) {
	t.Helper()
	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origNewPre := newS3PresignClient
	origPut := presignPutObject
	origDel := deleteObjects
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		presignPutObject = origPut
		deleteObjects = origDel
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return &s3.PresignClient{}
	}
}

func testConfig() Config {
	return Config{
		Endpoint:      "http://127.0.0.1:9000",
		Region:        "us-east-1",
		Bucket:        "correntelar",
		AccessKey:     "minioadmin",
		SecretKey:     "minioadmin",
		PublicBaseURL: "http://127.0.0.1:9000/correntelar/",
	}
}

func TestNewMediaStore_AppliesOptions(t *testing.T) {
	stubClients(t)

	var region string
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		region = lo.Region
		assert.NotNil(t, lo.Credentials)
		return aws.Config{}, nil
	}
	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return &s3.Client{}
	}

	store, err := NewMediaStore(context.Background(), testConfig())
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", region)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
	assert.Equal(t, 15*time.Minute, store.cfg.PresignTTL)
}

func TestNewMediaStore_Errors(t *testing.T) {
	stubClients(t)

	cfg := testConfig()
	cfg.Bucket = ""
	_, err := NewMediaStore(context.Background(), cfg)
	assert.Error(t, err)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("boom")
	}
	_, err = NewMediaStore(context.Background(), testConfig())
	assert.ErrorContains(t, err, "load aws config")
}

func TestPresignUpload(t *testing.T) {
	stubClients(t)
	store, err := NewMediaStore(context.Background(), testConfig())
	require.NoError(t, err)

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		assert.Equal(t, "correntelar", aws.ToString(in.Bucket))
		assert.Equal(t, "imoveis/a.jpg", aws.ToString(in.Key))
		assert.Equal(t, "image/jpeg", aws.ToString(in.ContentType))
		return &v4.PresignedHTTPRequest{URL: "http://signed/url", Method: "PUT"}, nil
	}

	up, err := store.PresignUpload(context.Background(), "imoveis/a.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "http://signed/url", up.UploadURL)
	assert.Equal(t, "http://127.0.0.1:9000/correntelar/imoveis/a.jpg", up.PublicURL)
	assert.Equal(t, 15*time.Minute, up.ExpiresIn)

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("sign failed")
	}
	_, err = store.PresignUpload(context.Background(), "imoveis/a.jpg", "")
	assert.Error(t, err)
}

func TestKeyFromRef(t *testing.T) {
	store := &MediaStore{cfg: testConfig()}

	cases := []struct {
		ref  string
		key  string
		isOK bool
	}{
		{"imoveis/a.jpg", "imoveis/a.jpg", true},
		{"/imoveis/galeria/b.png", "imoveis/galeria/b.png", true},
		{"http://127.0.0.1:9000/correntelar/imoveis/c.jpg", "imoveis/c.jpg", true},
		{"https://example.com/x.jpg", "", false},
		{"../etc/passwd", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		key, ok := store.KeyFromRef(tc.ref)
		assert.Equal(t, tc.isOK, ok, tc.ref)
		assert.Equal(t, tc.key, key, tc.ref)
	}
}

func TestDelete(t *testing.T) {
	stubClients(t)
	store, err := NewMediaStore(context.Background(), testConfig())
	require.NoError(t, err)

	called := 0
	deleteObjects = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectsInput) (*s3.DeleteObjectsOutput, error) {
		called++
		assert.Len(t, in.Delete.Objects, 2)
		return &s3.DeleteObjectsOutput{}, nil
	}
	require.NoError(t, store.Delete(context.Background(), "a.jpg", "b.jpg"))
	require.NoError(t, store.Delete(context.Background()))
	assert.Equal(t, 1, called)

	deleteObjects = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectsInput) (*s3.DeleteObjectsOutput, error) {
		return &s3.DeleteObjectsOutput{Errors: []types.Error{{Key: aws.String("a.jpg"), Code: aws.String("AccessDenied")}}}, nil
	}
	assert.Error(t, store.Delete(context.Background(), "a.jpg"))
}
