package utils

import (
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/WebuildSoft/myrifa-sub001/internal/config"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpiresIn: 3600}}

	token, err := GenerateJWT("64f000000000000000000001", cfg)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	claims, err := ValidateJWT(token, cfg)
	if err != nil {
		t.Fatalf("ValidateJWT() error = %v", err)
	}
	if claims["sub"] != "64f000000000000000000001" {
		t.Errorf("sub = %v, want the organizer id", claims["sub"])
	}

	otherCfg := &config.Config{JWT: config.JWTConfig{Secret: "other-secret", ExpiresIn: 3600}}
	if _, err := ValidateJWT(token, otherCfg); err == nil {
		t.Error("token validated against the wrong secret")
	}
}

func TestGenerateRandomString(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z0-9]+$`)

	for i := 0; i < 200; i++ {
		s, err := GenerateRandomString(6)
		if err != nil {
			t.Fatalf("GenerateRandomString() error = %v", err)
		}
		if len(s) != 6 {
			t.Fatalf("GenerateRandomString() = %q, want 6 characters", s)
		}
		if !pattern.MatchString(s) {
			t.Fatalf("GenerateRandomString() = %q, want lowercase alphanumeric only", s)
		}
	}
}

func TestSlugify(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	cases := []struct {
		title string
		want  string
	}{
		{"Rifa do iPhone 15", "rifa-do-iphone-15"},
		{"  Bicicleta!!  Aro 29 ", "bicicleta-aro-29"},
		{"***", "rifa"},
	}
	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			slug, err := Slugify(tc.title)
			if err != nil {
				t.Fatalf("Slugify() error = %v", err)
			}
			if !pattern.MatchString(slug) {
				t.Errorf("slug %q has invalid characters", slug)
			}
			if !strings.HasPrefix(slug, tc.want+"-") {
				t.Errorf("slug = %q, want prefix %q", slug, tc.want)
			}
		})
	}

	// The random suffix keeps equal titles apart.
	a, _ := Slugify("Rifa")
	b, _ := Slugify("Rifa")
	if a == b {
		t.Errorf("slugs for identical titles collide: %q", a)
	}

	// The suffix must stay inside the slug charset on every draw.
	for i := 0; i < 200; i++ {
		slug, err := Slugify("Rifa do iPhone 15")
		if err != nil {
			t.Fatalf("Slugify() error = %v", err)
		}
		if !pattern.MatchString(slug) {
			t.Fatalf("slug %q has invalid characters", slug)
		}
	}
}

func TestFormatBRL(t *testing.T) {
	cases := map[float64]string{
		10:    "R$ 10,00",
		7.5:   "R$ 7,50",
		0.99:  "R$ 0,99",
		123.4: "R$ 123,40",
	}
	for amount, want := range cases {
		if got := FormatBRL(amount); got != want {
			t.Errorf("FormatBRL(%v) = %q, want %q", amount, got, want)
		}
	}
}

func TestFormatNumbers(t *testing.T) {
	cases := []struct {
		numbers      []int
		totalNumbers int
		want         string
	}{
		{[]int{3, 7}, 100, "03, 07"},
		{[]int{3}, 1000, "003"},
		{[]int{0, 42, 999}, 1000, "000, 042, 999"},
		{[]int{5}, 10, "05"},
	}
	for _, tc := range cases {
		if got := FormatNumbers(tc.numbers, tc.totalNumbers); got != tc.want {
			t.Errorf("FormatNumbers(%v, %d) = %q, want %q", tc.numbers, tc.totalNumbers, got, tc.want)
		}
	}
}

func TestDedupeNumbers(t *testing.T) {
	got := DedupeNumbers([]int{7, 3, 7, 3, 1})
	if !reflect.DeepEqual(got, []int{1, 3, 7}) {
		t.Errorf("DedupeNumbers() = %v, want [1 3 7]", got)
	}

	if got := DedupeNumbers(nil); len(got) != 0 {
		t.Errorf("DedupeNumbers(nil) = %v, want empty", got)
	}
}
