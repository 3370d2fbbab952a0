package storage_test

import (
	"testing"

	"github.com/SscSPs/mof_report_service/internal/adapters/storage"
	"github.com/stretchr/testify/assert"
)

func TestExtractKey(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"plain key", "report-software/mof/alice/analysis_data/gl.parquet", "report-software/mof/alice/analysis_data/gl.parquet"},
		{"path style url", "https://s3.example.com/mof-bucket/report-software/mof/alice/gl.parquet", "report-software/mof/alice/gl.parquet"},
		{"url without bucket", "https://s3.example.com/report-software/gl.parquet", "report-software/gl.parquet"},
		{"s3 scheme", "s3://mof-bucket/report-software/gl.parquet", "report-software/gl.parquet"},
		{"leading slash", "/mof-bucket/gl.parquet", "gl.parquet"},
		{"bucket prefix only as substring", "mof-bucket-old/gl.parquet", "mof-bucket-old/gl.parquet"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, storage.ExtractKey(tt.ref, "mof-bucket"))
		})
	}
}
