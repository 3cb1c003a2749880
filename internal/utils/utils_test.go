package utils

import (
	"net/http"
	"testing"
	"time"
)

func TestIsHexNumber(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"0x10", true},
		{"0X1aF", true},
		{"0xffffffffffffffffffffffffffffffff", true},
		{"0x", false},
		{"16", false},
		{"0xg1", false},
		{"", false},
		{"x10", false},
	}

	for _, tt := range tests {
		if got := IsHexNumber(tt.input); got != tt.want {
			t.Errorf("IsHexNumber(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewHTTPClient(t *testing.T) {
	client := NewHTTPClient(5 * time.Second)
	if client.Timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %v", client.Timeout)
	}
	transport, ok := client.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("Expected *http.Transport, got %T", client.Transport)
	}
	if transport.ResponseHeaderTimeout != 5*time.Second {
		t.Errorf("Expected response header timeout 5s, got %v", transport.ResponseHeaderTimeout)
	}
	if transport == http.DefaultTransport {
		t.Error("Expected a cloned transport")
	}

	noTimeout := NewHTTPClient(0)
	if noTimeout.Timeout != 0 {
		t.Errorf("Expected no timeout, got %v", noTimeout.Timeout)
	}
}
