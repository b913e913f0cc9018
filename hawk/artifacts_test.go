package hawk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var readmeTime = time.Unix(1353832234, 0)

func TestNewArtifacts(t *testing.T) {
	t.Run("derives resource host and port", func(t *testing.T) {
		a, err := NewArtifacts("get", "http://Example.COM:8000/resource/1?b=1&a=2", readmeTime, "j4h3g2", "")
		require.NoError(t, err)

		assert.Equal(t, "GET", a.Method)
		assert.Equal(t, "/resource/1?b=1&a=2", a.Resource)
		assert.Equal(t, "example.com", a.Host)
		assert.Equal(t, 8000, a.Port)
		assert.Equal(t, int64(1353832234), a.Timestamp)
	})

	t.Run("default ports by scheme", func(t *testing.T) {
		a, err := NewArtifacts("GET", "https://api.example.com/api", readmeTime, "n", "")
		require.NoError(t, err)
		assert.Equal(t, 443, a.Port)

		a, err = NewArtifacts("GET", "http://api.example.com", readmeTime, "n", "")
		require.NoError(t, err)
		assert.Equal(t, 80, a.Port)
		assert.Equal(t, "/", a.Resource)
	})

	t.Run("internationalized host is mapped to ascii", func(t *testing.T) {
		a, err := NewArtifacts("GET", "https://bücher.example/api", readmeTime, "n", "")
		require.NoError(t, err)
		assert.Equal(t, "xn--bcher-kva.example", a.Host)
	})

	t.Run("ip hosts are kept", func(t *testing.T) {
		a, err := NewArtifacts("GET", "http://127.0.0.1:8080/api", readmeTime, "n", "")
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1", a.Host)
	})

	tests := []struct {
		name   string
		method string
		url    string
	}{
		{"empty method", "", "http://example.com/"},
		{"empty url", "GET", ""},
		{"relative url", "GET", "/api/opportunities"},
		{"unknown scheme without port", "GET", "ftp://example.com/x"},
		{"bad port", "GET", "http://example.com:99999/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewArtifacts(tt.method, tt.url, readmeTime, "n", "")
			assert.ErrorIs(t, err, ErrInvalidRequestSpec)
		})
	}
}

func TestArtifactsNormalized(t *testing.T) {
	base := Artifacts{
		Method:    "GET",
		Resource:  "/resource/1?b=1&a=2",
		Host:      "example.com",
		Port:      8000,
		Timestamp: 1353832234,
		Nonce:     "j4h3g2",
		Ext:       "some-app-ext-data",
	}

	t.Run("layout", func(t *testing.T) {
		expected := "hawk.1.header\n1353832234\nj4h3g2\nGET\n/resource/1?b=1&a=2\nexample.com\n8000\n\nsome-app-ext-data\n"
		assert.Equal(t, expected, base.Normalized(KindHeader))
	})

	t.Run("deterministic", func(t *testing.T) {
		for range 10 {
			assert.Equal(t, base.Normalized(KindHeader), base.Normalized(KindHeader))
		}
	})

	t.Run("absent ext keeps empty line", func(t *testing.T) {
		a := base
		a.Ext = ""
		assert.Equal(t, "hawk.1.header\n1353832234\nj4h3g2\nGET\n/resource/1?b=1&a=2\nexample.com\n8000\n\n\n", a.Normalized(KindHeader))
	})

	t.Run("ext newlines and backslashes are escaped", func(t *testing.T) {
		a := base
		a.Ext = "a\nb\\c"
		assert.Contains(t, a.Normalized(KindHeader), "\na\\nb\\\\c\n")
	})

	t.Run("method case is normalized", func(t *testing.T) {
		lower, err := NewArtifacts("get", "http://example.com:8000/resource/1?b=1&a=2", readmeTime, "j4h3g2", "some-app-ext-data")
		require.NoError(t, err)
		assert.Equal(t, "GET", lower.Method)
		assert.Equal(t, base.Normalized(KindHeader), lower.Normalized(KindHeader))
	})

	t.Run("single field changes change output", func(t *testing.T) {
		variants := map[string]func(a *Artifacts){
			"method":    func(a *Artifacts) { a.Method = "POST" },
			"resource":  func(a *Artifacts) { a.Resource = "/resource/2?b=1&a=2" },
			"timestamp": func(a *Artifacts) { a.Timestamp++ },
			"nonce":     func(a *Artifacts) { a.Nonce = "j4h3g3" },
			"ext":       func(a *Artifacts) { a.Ext = "" },
			"ext value": func(a *Artifacts) { a.Ext = "{x: 'y'}" },
		}

		for name, mutate := range variants {
			t.Run(name, func(t *testing.T) {
				a := base
				mutate(&a)
				assert.NotEqual(t, base.Normalized(KindHeader), a.Normalized(KindHeader))
			})
		}
	})
}

func TestPayloadHash(t *testing.T) {
	t.Run("readme vector", func(t *testing.T) {
		hash, err := PayloadHash(AlgorithmSHA256, "text/plain", []byte("Thank you for flying Hawk"))
		require.NoError(t, err)
		assert.Equal(t, "Yi9LfIIFRtBEPt74PVmbTF/xVAwPn7ub15ePICfgnuY=", hash)
	})

	t.Run("content type parameters are ignored", func(t *testing.T) {
		a, err := PayloadHash(AlgorithmSHA256, "Text/Plain; charset=utf-8", []byte("body"))
		require.NoError(t, err)

		b, err := PayloadHash(AlgorithmSHA256, "text/plain", []byte("body"))
		require.NoError(t, err)

		assert.Equal(t, b, a)
	})

	t.Run("unknown algorithm", func(t *testing.T) {
		_, err := PayloadHash(Algorithm("md5"), "text/plain", nil)
		assert.ErrorIs(t, err, ErrUnknownAlgorithm)
	})
}
