package service

import (
	"context"
	"testing"

	"github.com/agriance/contractgen/config"
)

func TestNewMinioService(t *testing.T) {
	cfg := &config.MinioConfig{
		Endpoint:  "localhost:9000",
		AccessKey: "test",
		SecretKey: "test",
		Bucket:    "contracts",
		UseSSL:    false,
	}

	svc, err := NewMinioService(cfg)
	if err != nil {
		t.Fatalf("NewMinioService: %v", err)
	}
	if svc.bucket != "contracts" {
		t.Errorf("Expected bucket 'contracts', got '%s'", svc.bucket)
	}
}

func TestMinioServiceGetPublicURL(t *testing.T) {
	tests := []struct {
		name       string
		useSSL     bool
		endpoint   string
		bucket     string
		objectName string
		expected   string
	}{
		{
			name:       "http url",
			useSSL:     false,
			endpoint:   "localhost:9000",
			bucket:     "test-bucket",
			objectName: "tenant1/CRT-20261018-ABCDEF/Contract_CRT-20261018-ABCDEF.pdf",
			expected:   "http://localhost:9000/test-bucket/tenant1/CRT-20261018-ABCDEF/Contract_CRT-20261018-ABCDEF.pdf",
		},
		{
			name:       "https url",
			useSSL:     true,
			endpoint:   "minio.example.com",
			bucket:     "contracts",
			objectName: "tenant/abc/doc.pdf",
			expected:   "https://minio.example.com/contracts/tenant/abc/doc.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MinioService{
				bucket: tt.bucket,
				config: &config.MinioConfig{
					Endpoint: tt.endpoint,
					UseSSL:   tt.useSSL,
				},
			}

			result := svc.GetPublicURL(tt.objectName)
			if result != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, result)
			}
		})
	}
}

func TestObjectName(t *testing.T) {
	tests := []struct {
		tenant, number, filename string
		want                     string
	}{
		{"tenant1", "CRT-20261018-ABCDEF", "Contract_CRT-20261018-ABCDEF.pdf", "tenant1/CRT-20261018-ABCDEF/Contract_CRT-20261018-ABCDEF.pdf"},
		{"", "CRT-1", "a.pdf", "_/CRT-1/a.pdf"},
		{"a/b", "..", "c.pdf", "a_b/_/c.pdf"},
	}
	for _, tt := range tests {
		if got := ObjectName(tt.tenant, tt.number, tt.filename); got != tt.want {
			t.Errorf("ObjectName(%q, %q, %q) = %q, want %q", tt.tenant, tt.number, tt.filename, got, tt.want)
		}
	}
}

func TestMinioServiceArchiveCancelled(t *testing.T) {
	svc, err := NewMinioService(&config.MinioConfig{
		Endpoint:   "localhost:1",
		AccessKey:  "test",
		SecretKey:  "test",
		Bucket:     "contracts",
		ExpireDays: 7,
	})
	if err != nil {
		t.Fatalf("NewMinioService: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := svc.Archive(ctx, "tenant1", "CRT-1", "Contract_CRT-1.pdf", []byte("%PDF-1.3")); err == nil {
		t.Error("Expected archive with cancelled context to fail")
	}
}

func TestAttachment(t *testing.T) {
	if got, want := attachment("Contract_CRT-1.pdf"), `attachment; filename="Contract_CRT-1.pdf"`; got != want {
		t.Errorf("attachment = %s, want %s", got, want)
	}
}
