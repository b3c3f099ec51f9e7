package client

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// decompressTransport wraps an http.RoundTripper and transparently
// decompresses gzip, brotli, and zstd response bodies.
type decompressTransport struct {
	base http.RoundTripper
}

func newDecompressTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &decompressTransport{base: base}
}

func (t *decompressTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Work on a copy so the caller's request headers stay untouched.
	req = req.Clone(req.Context())
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", "gzip, br, zstd")
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// HEAD, 204, and 304 responses carry no body to decompress.
	if resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	var decoded io.ReadCloser
	switch outerEncoding(resp.Header.Get("Content-Encoding")) {
	case "":
		return resp, nil
	case "gzip":
		gr, err := gzip.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, err
		}
		decoded = gr
	case "br":
		decoded = io.NopCloser(brotli.NewReader(resp.Body))
	case "zstd":
		zr, err := zstd.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, err
		}
		decoded = zr.IOReadCloser()
	default:
		// Unknown encoding, hand the body through untouched.
		return resp, nil
	}

	resp.Body = &decodedBody{decoded: decoded, original: resp.Body}
	// The encoding and length headers no longer describe the body.
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1

	return resp, nil
}

// decodedBody closes both the decompressor and the underlying body.
type decodedBody struct {
	decoded  io.ReadCloser
	original io.ReadCloser
}

func (b *decodedBody) Read(p []byte) (int, error) {
	return b.decoded.Read(p)
}

func (b *decodedBody) Close() error {
	decodedErr := b.decoded.Close()
	originalErr := b.original.Close()
	if decodedErr != nil {
		return decodedErr
	}
	return originalErr
}

// outerEncoding returns the outermost (last-applied) encoding from a
// Content-Encoding header, lowercased, or "" when the header is empty.
func outerEncoding(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.Split(header, ",")
	return strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
}
