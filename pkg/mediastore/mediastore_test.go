package mediastore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferencePublicID(t *testing.T) {
	ref := Reference{Bucket: "post", Key: "abc-123"}
	assert.Equal(t, "post/abc-123", ref.PublicID())
}

func TestSplitPublicID(t *testing.T) {
	bucket, key, err := SplitPublicID("post/abc-123")
	require.NoError(t, err)
	assert.Equal(t, "post", bucket)
	assert.Equal(t, "abc-123", key)
}

func TestSplitPublicIDRejectsMalformed(t *testing.T) {
	for _, publicID := range []string{"", "no-slash", "/leading", "trailing/"} {
		_, _, err := SplitPublicID(publicID)
		assert.Error(t, err, "publicID %q", publicID)
	}
}

func TestObjectURLImage(t *testing.T) {
	url := ObjectURL("http://cdn.example.com", "post", "abc-123", "image/png")
	assert.Equal(t, "http://cdn.example.com/v?filename=post/abc-123", url)
}

func TestObjectURLVideo(t *testing.T) {
	url := ObjectURL("http://cdn.example.com", "post", "abc-123", "video/mp4")
	assert.Equal(t, "http://cdn.example.com/video?title=post/abc-123", url)
}
