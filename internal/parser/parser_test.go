package parser

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseHosts_CommaList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "single host",
			input: "10.0.0.1",
			want:  []string{"10.0.0.1"},
		},
		{
			name:  "list with whitespace and duplicates",
			input: "10.0.0.1, 10.0.0.2,10.0.0.1 ,example.com",
			want:  []string{"10.0.0.1", "10.0.0.2", "example.com"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseHosts(tt.input)
			if err != nil {
				t.Fatalf("ParseHosts(%q) error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseHosts(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseHosts_CIDR(t *testing.T) {
	t.Parallel()

	got, err := ParseHosts("192.168.1.0/30")
	if err != nil {
		t.Fatalf("ParseHosts error: %v", err)
	}
	// Network and broadcast addresses are excluded.
	want := []string{"192.168.1.1", "192.168.1.2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseHosts(192.168.1.0/30) = %v, want %v", got, want)
	}
}

func TestParseHosts_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "hosts.txt")
	if err := os.WriteFile(path, []byte("10.1.1.1\n\n10.1.1.2\n"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got, err := ParseHosts(path)
	if err != nil {
		t.Fatalf("ParseHosts error: %v", err)
	}
	want := []string{"10.1.1.1", "10.1.1.2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseHosts(file) = %v, want %v", got, want)
	}
}
