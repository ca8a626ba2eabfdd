package jobs

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"keepnotes/cmd/internal/infrastructure/aws/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/johannesboyne/gofakes3"
	"github.com/johannesboyne/gofakes3/backend/s3mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBucket = "keepnotes-test"

type staticSnapshot struct {
	data []byte
	err  error
}

func (s staticSnapshot) Snapshot() ([]byte, error) { return s.data, s.err }

func newFakeS3(t *testing.T) *s3.Client {
	t.Helper()

	ts := httptest.NewServer(gofakes3.New(s3mem.New()).Server())
	t.Cleanup(ts.Close)

	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("test-key", "test-secret", ""),
		),
	)
	require.NoError(t, err)

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(ts.URL)
		o.UsePathStyle = true
	})

	_, err = client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(testBucket)})
	require.NoError(t, err)
	return client
}

func TestUploadStoresSnapshot(t *testing.T) {
	client := newFakeS3(t)
	doc := []byte(`[{"id":1,"title":"Shopping"}]`)
	uploader := NewSnapshotUploader(staticSnapshot{data: doc}, storage.NewFromS3Client(client, testBucket), time.Minute)

	key, err := uploader.Upload(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, storage.PathSnapshots+"notes-"))
	assert.True(t, strings.HasSuffix(key, ".json"))

	out, err := client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(testBucket),
		Key:    aws.String(key),
	})
	require.NoError(t, err)
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	require.NoError(t, err)
	assert.Equal(t, doc, body)
}

func TestUploadReportsSnapshotFailure(t *testing.T) {
	uploader := NewSnapshotUploader(staticSnapshot{err: errors.New("disk gone")}, storage.NewFromS3Client(newFakeS3(t), testBucket), 0)

	_, err := uploader.Upload(context.Background())
	assert.ErrorContains(t, err, "disk gone")
	assert.Equal(t, DefaultSnapshotInterval, uploader.interval)
}

func TestUploadHonoursCancelledContext(t *testing.T) {
	client := newFakeS3(t)
	uploader := NewSnapshotUploader(staticSnapshot{data: []byte("[]")}, storage.NewFromS3Client(client, testBucket), time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uploader.Upload(ctx)
	require.ErrorIs(t, err, context.Canceled)

	out, err := client.ListObjectsV2(context.Background(), &s3.ListObjectsV2Input{Bucket: aws.String(testBucket)})
	require.NoError(t, err)
	assert.Empty(t, out.Contents)
}

func TestStartStopsOnCancel(t *testing.T) {
	uploader := NewSnapshotUploader(staticSnapshot{data: []byte("[]")}, storage.NewFromS3Client(newFakeS3(t), testBucket), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		uploader.Start(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("uploader did not stop after cancel")
	}
}
