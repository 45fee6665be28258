package conduit

import (
	"reflect"
	"testing"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"", []string{}},
		{"/", []string{}},
		{"fields", []string{"fields"}},
		{"coordsets/coords/type", []string{"coordsets", "coords", "type"}},
		{"/a/b/", []string{"a", "b"}},
		{"a//b", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := SplitPath(tt.path)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestJoinPath(t *testing.T) {
	tests := []struct {
		parts []string
		want  string
	}{
		{nil, ""},
		{[]string{"fields"}, "fields"},
		{[]string{"topologies", "mesh", "type"}, "topologies/mesh/type"},
		{[]string{"", "a", "", "b"}, "a/b"},
		{[]string{"a/", "/b"}, "a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := JoinPath(tt.parts...); got != tt.want {
				t.Errorf("JoinPath(%v) = %q, want %q", tt.parts, got, tt.want)
			}
		})
	}
}

func TestCleanPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"", ""},
		{"/", ""},
		{"/a/b/", "a/b"},
		{"a//b///c", "a/b/c"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := CleanPath(tt.path); got != tt.want {
				t.Errorf("CleanPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
