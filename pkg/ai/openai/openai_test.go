package openai_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sproutplan/sproutplan/pkg/ai"
	"github.com/sproutplan/sproutplan/pkg/ai/openai"
)

func embeddingServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func TestEmbeddingForQuery(t *testing.T) {
	srv := embeddingServer(t, `{"object":"list","model":"text-embedding-3-large","data":[{"object":"embedding","index":0,"embedding":[0.1,0.2,0.3]}]}`)
	defer srv.Close()

	driver := openai.New("test-token", srv.URL, ai.ModelName{})

	vec, err := driver.EmbeddingForQuery(context.Background(), "water play")
	assert.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestEmbeddingForQueryEmptyData(t *testing.T) {
	srv := embeddingServer(t, `{"object":"list","model":"text-embedding-3-large","data":[]}`)
	defer srv.Close()

	driver := openai.New("test-token", srv.URL, ai.ModelName{})

	vec, err := driver.EmbeddingForQuery(context.Background(), "water play")
	assert.Nil(t, vec)
	var embedErr *ai.EmbeddingError
	assert.ErrorAs(t, err, &embedErr)
}
