package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/worksheet-lab/ruiji/internal/models"
)

func imageIDs(imgs []models.Image) []string {
	ids := make([]string, 0, len(imgs))
	for _, img := range imgs {
		ids = append(ids, img.ID)
	}
	return ids
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRemoveAt(t *testing.T) {
	imgs := []models.Image{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}

	tests := []struct {
		name     string
		index    int
		expected []string
		wantErr  bool
	}{
		{name: "first", index: 0, expected: []string{"b", "c", "d"}},
		{name: "middle", index: 2, expected: []string{"a", "b", "d"}},
		{name: "last", index: 3, expected: []string{"a", "b", "c"}},
		{name: "negative", index: -1, wantErr: true},
		{name: "past end", index: 4, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := RemoveAt(imgs, tt.index)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RemoveAt() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrNotFound) {
					t.Errorf("Expected ErrNotFound, got %v", err)
				}
				return
			}
			if !equalIDs(imageIDs(out), tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, imageIDs(out))
			}
			if len(imgs) != 4 || imgs[0].ID != "a" || imgs[3].ID != "d" {
				t.Errorf("Input slice was modified: %v", imageIDs(imgs))
			}
		})
	}
}

func TestRemoveAtEveryIndex(t *testing.T) {
	for n := 1; n <= 5; n++ {
		imgs := make([]models.Image, n)
		for i := range imgs {
			imgs[i].ID = string(rune('a' + i))
		}
		for i := 0; i < n; i++ {
			out, err := RemoveAt(imgs, i)
			if err != nil {
				t.Fatalf("n=%d i=%d: %v", n, i, err)
			}
			if len(out) != n-1 {
				t.Fatalf("n=%d i=%d: expected %d images, got %d", n, i, n-1, len(out))
			}
			for j, img := range out {
				want := j
				if j >= i {
					want = j + 1
				}
				if img.ID != imgs[want].ID {
					t.Errorf("n=%d i=%d: position %d expected %s, got %s", n, i, j, imgs[want].ID, img.ID)
				}
			}
		}
	}
}

func TestSessionStore(t *testing.T) {
	store := New()
	store.Set("s1", &models.Session{ID: "s1", CreatedAt: time.Now()})

	if _, ok := store.Get("missing"); ok {
		t.Error("Expected missing session to be absent")
	}

	for _, id := range []string{"a", "b", "c"} {
		if _, err := store.AddImage("s1", models.Image{ID: id}); err != nil {
			t.Fatalf("AddImage() error = %v", err)
		}
	}

	session, err := store.DeleteImage("s1", 1)
	if err != nil {
		t.Fatalf("DeleteImage() error = %v", err)
	}
	if !equalIDs(imageIDs(session.Images), []string{"a", "c"}) {
		t.Errorf("Unexpected images after delete: %v", imageIDs(session.Images))
	}

	if _, err := store.DeleteImage("s1", 5); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for bad index, got %v", err)
	}
	if _, err := store.AddImage("missing", models.Image{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing session, got %v", err)
	}

	// returned sessions are copies
	session.Images[0].ID = "mutated"
	stored, _ := store.Get("s1")
	if stored.Images[0].ID != "a" {
		t.Error("Store should not share image slices with callers")
	}

	result := &models.GenerationResult{Text: "x", Provider: "gemini", Model: "gemini-2.5-flash"}
	session, err = store.SetResult("s1", result)
	if err != nil {
		t.Fatalf("SetResult() error = %v", err)
	}
	if session.Result == nil || session.Provider != "gemini" || session.Model != "gemini-2.5-flash" {
		t.Errorf("Result not recorded: %+v", session)
	}

	if len(store.GetAll()) != 1 {
		t.Errorf("Expected 1 session")
	}
	store.Delete("s1")
	if len(store.GetAll()) != 0 {
		t.Errorf("Expected no sessions after delete")
	}
}

func TestSettingsStore(t *testing.T) {
	dir := t.TempDir()
	store := NewSettingsStore(dir)

	settings, err := store.Load()
	if err != nil {
		t.Fatalf("Load() on empty dir error = %v", err)
	}
	if settings != (models.Settings{}) {
		t.Errorf("Expected zero settings, got %+v", settings)
	}

	want := models.Settings{
		APIKey:         "secret-key-1234",
		Provider:       "gemini",
		Model:          "gemini-2.5-pro",
		StudentName:    "山田 花子",
		InstructorName: "佐藤",
	}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := NewSettingsStore(dir).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}

	info, err := os.Stat(filepath.Join(dir, settingsFile))
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected settings file mode 0600, got %v", info.Mode().Perm())
	}
}

func TestSettingsStoreCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, settingsFile), []byte("api_key: [unterminated"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := NewSettingsStore(dir).Load(); err == nil {
		t.Error("Expected parse error")
	}
}

func TestSettingsMasked(t *testing.T) {
	tests := []struct {
		key      string
		expected string
	}{
		{"", ""},
		{"abc", "****"},
		{"AIzaSyExample9876", "****9876"},
	}
	for _, tt := range tests {
		if got := (models.Settings{APIKey: tt.key}).Masked().APIKey; got != tt.expected {
			t.Errorf("Masked(%q) = %q, expected %q", tt.key, got, tt.expected)
		}
	}
}
