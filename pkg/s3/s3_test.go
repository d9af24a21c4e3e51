package s3_test

import (
	"testing"

	"github.com/benmeehan/accident-agent/pkg/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	assert.Equal(t, "car-42/abc.json", s3.ObjectName("car-42", "abc"))
	assert.Equal(t, "unknown-vehicle/abc.json", s3.ObjectName("", "abc"))
}

func TestNewObjectStorage(t *testing.T) {
	store, err := s3.NewObjectStorage(s3.Options{
		Endpoint:  "localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "accidents",
	})

	require.NoError(t, err)
	assert.NotNil(t, store.Conn)
	assert.Equal(t, "localhost:9000", store.Conn.EndpointURL().Host)
}
