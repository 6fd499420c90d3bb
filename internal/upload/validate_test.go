package upload_test

import (
	"errors"
	"testing"

	"lskinbot/internal/upload"
)

func TestValidateAcceptsOnlyPNG(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		filename string
		ok       bool
	}{
		{"lowercase", "skin.png", true},
		{"uppercase", "SKIN.PNG", true},
		{"mixed case", "Zombie.PnG", true},
		{"nested path", "uploads/zombie.png", true},
		{"jpg", "skin.jpg", false},
		{"jpeg", "photo.jpeg", false},
		{"gif", "skin.gif", false},
		{"no extension", "skin", false},
		{"png in stem only", "png.txt", false},
		{"trailing dot", "skin.", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := upload.Validate(tc.filename)
			if tc.ok && err != nil {
				t.Fatalf("Validate(%q) = %v, want nil", tc.filename, err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatalf("Validate(%q) = nil, want rejection", tc.filename)
				}
				var notPNG *upload.ErrNotPNG
				if !errors.As(err, &notPNG) {
					t.Fatalf("Validate(%q) returned %T, want *ErrNotPNG", tc.filename, err)
				}
				if notPNG.Filename != tc.filename {
					t.Fatalf("rejection names %q, want %q", notPNG.Filename, tc.filename)
				}
			}
		})
	}
}
