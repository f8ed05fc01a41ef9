package state

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	aws "github.com/aws/aws-sdk-go-v2/aws"
	awsS3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

func TestKey(t *testing.T) {
	k := Key{RunID: "rhine", Date: time.Date(1999, time.December, 31, 0, 0, 0, 0, time.UTC), Var: "S_river"}
	assert.Equal(t, "rhine_1999-12-31_S_river.bin", k.String())
}

func TestCodec(t *testing.T) {
	v := []float64{0., 1.5, -2.25, 1e300}
	b := encode(v)
	assert.Equal(t, 32, len(b))
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0xf8, 0x3f}, b[8:16]) // 1.5, little endian
	got, err := decode(b)
	assert.NoError(t, err)
	assert.Equal(t, v, got)

	_, err = decode(b[:5])
	assert.Error(t, err)
}

// mockS3 serves a tiny in-memory subset of the S3 API
type mockS3 struct {
	mu    sync.Mutex
	state map[string][]byte
}

func (m *mockS3) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}
	switch req.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		m.state[key] = body
		return &http.Response{StatusCode: 200, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{"ETag": {"\"etag\""}}}, nil
	case http.MethodGet:
		if b, ok := m.state[key]; ok {
			return &http.Response{StatusCode: 200, Body: io.NopCloser(bytes.NewReader(b)), Header: http.Header{
				"Content-Type": {"application/octet-stream"},
			}}, nil
		}
		body := `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`
		return &http.Response{StatusCode: 404, Body: io.NopCloser(strings.NewReader(body)), Header: http.Header{"Content-Type": {"application/xml"}}}, nil
	}
	return &http.Response{StatusCode: 501, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{}}, nil
}

func newMockS3(t *testing.T) *S3 {
	t.Helper()
	rt := &mockS3{state: make(map[string][]byte)}
	s, err := NewS3(context.Background(), Config{
		Bucket:          "bkt",
		Prefix:          "runs",
		Endpoint:        "https://mock.s3.local",
		PathStyle:       true,
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
	}, func(o *awsS3.Options) {
		o.HTTPClient = &http.Client{Transport: rt}
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})
	assert.NoError(t, err)
	return s
}

func TestBackends(t *testing.T) {
	ctx := context.Background()
	backends := map[string]func(t *testing.T) Backend{
		"dir": func(t *testing.T) Backend {
			b, err := NewDir(t.TempDir())
			assert.NoError(t, err)
			return b
		},
		"sqlite": func(t *testing.T) Backend {
			b, err := NewSQLite(ctx, filepath.Join(t.TempDir(), "state.db"))
			assert.NoError(t, err)
			return b
		},
		"pebble": func(t *testing.T) Backend {
			b, err := NewPebble(filepath.Join(t.TempDir(), "pebble"))
			assert.NoError(t, err)
			return b
		},
		"s3": func(t *testing.T) Backend { return newMockS3(t) },
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			b := open(t)
			defer b.Close()
			k := Key{RunID: "run", Date: time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC), Var: "S_ResStorage"}

			t.Run("missing key", func(t *testing.T) {
				_, err := b.Get(ctx, k)
				assert.True(t, errors.Is(err, ErrNotFound))
				assert.Contains(t, err.Error(), ".Get ")
				assert.Contains(t, err.Error(), k.String())
			})

			t.Run("round trip", func(t *testing.T) {
				v := []float64{1., 2., 3.5}
				assert.NoError(t, b.Put(ctx, k, v))
				got, err := b.Get(ctx, k)
				assert.NoError(t, err)
				assert.Equal(t, v, got)
			})

			t.Run("overwrite", func(t *testing.T) {
				assert.NoError(t, b.Put(ctx, k, []float64{9.}))
				got, err := b.Get(ctx, k)
				assert.NoError(t, err)
				assert.Equal(t, []float64{9.}, got)
			})
		})
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	b, err := Open(ctx, Config{Backend: BackendDir, Dir: t.TempDir()})
	assert.NoError(t, err)
	assert.NoError(t, b.Close())

	_, err = Open(ctx, Config{Backend: "tape"})
	assert.Error(t, err)

	_, err = Open(ctx, Config{Backend: BackendS3})
	assert.Error(t, err)
}
