// Package exportstring implements the textual import/export string format:
// a version digit followed by base64 of zlib-compressed JSON (spec §5
// "Export strings").
package exportstring

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
)

// Version is the only export string version this decoder understands.
const Version = '0'

// Decode parses a textual export string and returns the decompressed JSON
// document it carries.
func Decode(s string) (map[string]interface{}, error) {
	if len(s) == 0 {
		return nil, fmt.Errorf("empty export string")
	}
	if s[0] != Version {
		return nil, fmt.Errorf("unsupported export string version %q", s[0])
	}

	raw, err := base64.StdEncoding.DecodeString(s[1:])
	if err != nil {
		return nil, fmt.Errorf("base64 decode: %w", err)
	}

	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("zlib decompress: %w", err)
	}
	defer zr.Close()

	jsonBytes, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("zlib decompress: %w", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(jsonBytes, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal export payload: %w", err)
	}
	return doc, nil
}

// Encode compresses doc as JSON and wraps it in the version-prefixed,
// base64-encoded export string format.
func Encode(doc interface{}) (string, error) {
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal export payload: %w", err)
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return "", fmt.Errorf("zlib writer: %w", err)
	}
	if _, err := zw.Write(jsonBytes); err != nil {
		return "", fmt.Errorf("zlib compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("zlib compress: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	return string(Version) + encoded, nil
}
