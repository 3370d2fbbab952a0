// Package storage holds helpers shared by the blob store adapters.
package storage

import (
	"net/url"
	"strings"
)

// ExtractKey turns a snapshot reference into an object key. The reference may
// be a plain key, a path-style URL (https://host/bucket/key) or s3://bucket/key;
// a leading bucket segment is stripped.
func ExtractKey(ref, bucket string) string {
	path := strings.TrimSpace(ref)
	if u, err := url.Parse(path); err == nil {
		path = u.Path
	}
	path = strings.TrimLeft(path, "/")
	if bucket != "" && strings.HasPrefix(path, bucket+"/") {
		path = path[len(bucket)+1:]
	}
	return path
}
