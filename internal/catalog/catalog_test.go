package catalog

import (
	"errors"
	"testing"

	"chlog/internal/services"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		key        string
		wantFolder string
		wantErr    bool
	}{
		{"gotime", "Go Time", false},
		{"GoTime", "Go Time", false},
		{"  podcast ", "Changelog Interviews", false},
		{"interviews", "Changelog Interviews", false},
		{"unknown", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			show, err := Lookup(tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Lookup(%q) err = %v, want error %v", tt.key, err, tt.wantErr)
			}
			if err == nil && show.Folder != tt.wantFolder {
				t.Errorf("Lookup(%q).Folder = %q, want %q", tt.key, show.Folder, tt.wantFolder)
			}
		})
	}
}

func TestLookupUnknownIsNotFound(t *testing.T) {
	_, err := Lookup("nope")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestBackstageHasNoFeed(t *testing.T) {
	show, err := Lookup("backstage")
	if err != nil {
		t.Fatalf("backstage missing from catalog: %v", err)
	}
	if show.HasFeed() {
		t.Error("backstage should have no feed URL")
	}
}

func TestKeysAreSortedAndUnique(t *testing.T) {
	keys := Keys()
	if len(keys) == 0 {
		t.Fatal("empty catalog")
	}
	seen := map[string]bool{}
	for i, key := range keys {
		if seen[key] {
			t.Errorf("duplicate key %q", key)
		}
		seen[key] = true
		if i > 0 && keys[i-1] > key {
			t.Errorf("keys not sorted: %q before %q", keys[i-1], key)
		}
	}
}
