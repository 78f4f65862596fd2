package service

import (
	"errors"
	"testing"
)

func TestSlugifyFoldsTurkishCharacters(t *testing.T) {
	cases := map[string]string{
		"Çağrı Şöğüt":         "cagri-sogut",
		"IŞIK Ürünleri":       "isik-urunleri",
		"İnce  Kılıf / Kapak": "ince-kilif-kapak",
		"  Telefon 15 Pro  ":  "telefon-15-pro",
		"!!!":                 "",
	}
	for input, want := range cases {
		if got := Slugify(input); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestUniqueSlugAppendsSuffix(t *testing.T) {
	taken := map[string]bool{"akilli-saat": true, "akilli-saat-1": true}
	counter := func(slug string) (int64, error) {
		if taken[slug] {
			return 1, nil
		}
		return 0, nil
	}

	slug, err := UniqueSlug("Akıllı Saat", counter)
	if err != nil {
		t.Fatalf("unique slug failed: %v", err)
	}
	if slug != "akilli-saat-2" {
		t.Fatalf("expected akilli-saat-2, got %s", slug)
	}

	slug, err = UniqueSlug("Kulaklık", counter)
	if err != nil || slug != "kulaklik" {
		t.Fatalf("expected kulaklik, got %s err=%v", slug, err)
	}

	if _, err := UniqueSlug("***", counter); !errors.Is(err, ErrSlugInvalid) {
		t.Fatalf("expected ErrSlugInvalid, got %v", err)
	}
}
