package s3store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/SscSPs/mof_report_service/internal/apperrors"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockObjectAPI struct {
	mock.Mock
}

func (m *mockObjectAPI) GetObject(ctx context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, aws.ToString(params.Bucket), aws.ToString(params.Key))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func (m *mockObjectAPI) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, _ := io.ReadAll(params.Body)
	args := m.Called(ctx, aws.ToString(params.Bucket), aws.ToString(params.Key), body, aws.ToString(params.ContentType))
	return &s3.PutObjectOutput{}, args.Error(0)
}

var _ objectAPI = (*mockObjectAPI)(nil)

func TestStoreGet(t *testing.T) {
	api := new(mockObjectAPI)
	store := &Store{client: api, bucket: "mof"}
	ctx := context.Background()

	api.On("GetObject", ctx, "mof", "a/b.parquet").
		Return(&s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader([]byte("PAR1")))}, nil)
	api.On("GetObject", ctx, "mof", "missing").Return(nil, &types.NoSuchKey{})
	api.On("GetObject", ctx, "mof", "broken").Return(nil, errors.New("connection reset"))

	data, err := store.Get(ctx, "a/b.parquet")
	require.NoError(t, err)
	assert.Equal(t, []byte("PAR1"), data)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = store.Get(ctx, "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)

	api.AssertExpectations(t)
}

func TestStorePut(t *testing.T) {
	api := new(mockObjectAPI)
	store := &Store{client: api, bucket: "mof"}
	ctx := context.Background()

	api.On("PutObject", ctx, "mof", "k", []byte("data"), "application/octet-stream").Return(nil).Once()
	require.NoError(t, store.Put(ctx, "k", []byte("data"), "application/octet-stream"))

	api.On("PutObject", ctx, "mof", "denied", []byte("x"), "text/plain").Return(errors.New("access denied")).Once()
	assert.ErrorContains(t, store.Put(ctx, "denied", []byte("x"), "text/plain"), "access denied")

	assert.Equal(t, "mof", store.Bucket())
	api.AssertExpectations(t)
}
