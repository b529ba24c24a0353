package storage

import (
	"strings"
	"testing"
)

func TestObjectKey(t *testing.T) {
	first := objectKey("photo.png")
	second := objectKey("photo.png")

	if first == second {
		t.Error("two keys for the same filename are identical")
	}
	if !strings.HasPrefix(first, "uploads/") {
		t.Errorf("key = %v, want uploads/ prefix", first)
	}
	if !strings.HasSuffix(first, "-photo.png") {
		t.Errorf("key = %v, want original filename suffix", first)
	}
}

func TestObjectURL(t *testing.T) {
	tests := []struct {
		name    string
		client  *Client
		key     string
		wantURL string
	}{
		{
			name:    "custom endpoint",
			client:  &Client{bucket: "media", endpoint: "http://localhost:9000", region: "us-east-1"},
			key:     "uploads/a.png",
			wantURL: "http://localhost:9000/media/uploads/a.png",
		},
		{
			name:    "aws endpoint",
			client:  &Client{bucket: "media", region: "eu-west-1"},
			key:     "uploads/a.png",
			wantURL: "https://media.s3.eu-west-1.amazonaws.com/uploads/a.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.client.objectURL(tt.key); got != tt.wantURL {
				t.Errorf("objectURL() = %v, want %v", got, tt.wantURL)
			}
		})
	}
}
