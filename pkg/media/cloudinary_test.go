package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points the SDK at a local fake of the upload endpoint.
func newTestClient(t *testing.T, serverURL string) *CloudinaryClient {
	t.Helper()
	client, err := NewCloudinaryClient("demo", "key123", "secret", "robe_products")
	require.NoError(t, err)
	client.cld.Config.API.UploadPrefix = serverURL
	client.cld.Upload.Config.API.UploadPrefix = serverURL
	return client
}

func TestUploadReturnsSecureURL(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "data:image/png;base64,aGVsbG8=", r.FormValue("file"))
		assert.Equal(t, "robe_products", r.FormValue("folder"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"secure_url":"https://res.cloudinary.com/demo/image/upload/robe_products/x.png"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	url, err := client.Upload(context.Background(), "data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/robe_products/x.png", url)
	assert.True(t, strings.HasSuffix(gotPath, "/image/upload"), "unexpected path %q", gotPath)
}

func TestUploadPropagatesGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid image file"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Upload(context.Background(), "not-an-image")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid image file")
}

func TestUploadUnreachableGateway(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")
	_, err := client.Upload(context.Background(), "data:image/png;base64,aGVsbG8=")
	assert.Error(t, err)
}
