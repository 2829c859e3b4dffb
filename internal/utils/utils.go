package utils

import (
	"crypto/rand"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/WebuildSoft/myrifa-sub001/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT generates a bearer token for an organizer
func GenerateJWT(organizerID string, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"sub": organizerID,
		"exp": time.Now().Add(time.Second * time.Duration(cfg.JWT.ExpiresIn)).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ValidateJWT validates a bearer token and returns its claims
func ValidateJWT(tokenString string, cfg *config.Config) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// slugAlphabet keeps random suffixes inside the slug charset, so a
// generated slug never carries characters a slug route would reject.
const slugAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateRandomString generates a random lowercase alphanumeric
// string of the specified length
func GenerateRandomString(length int) (string, error) {
	b := make([]byte, length)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	for i := range b {
		b[i] = slugAlphabet[int(b[i])%len(slugAlphabet)]
	}
	return string(b), nil
}

// Slugify turns a campaign title into a URL-safe slug with a short
// random suffix to keep slugs unique across organizers.
func Slugify(title string) (string, error) {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "rifa"
	}
	suffix, err := GenerateRandomString(6)
	if err != nil {
		return "", err
	}
	return slug + "-" + suffix, nil
}

// FormatBRL formats an amount as Brazilian currency, e.g. "R$ 15,00"
func FormatBRL(amount float64) string {
	return "R$ " + strings.Replace(fmt.Sprintf("%.2f", amount), ".", ",", 1)
}

// FormatNumbers renders ticket numbers for buyer-facing messages,
// e.g. "03, 07, 12" for a 2-digit campaign.
func FormatNumbers(numbers []int, totalNumbers int) string {
	width := len(fmt.Sprintf("%d", totalNumbers-1))
	if width < 2 {
		width = 2
	}
	parts := make([]string, 0, len(numbers))
	for _, n := range numbers {
		parts = append(parts, fmt.Sprintf("%0*d", width, n))
	}
	return strings.Join(parts, ", ")
}

// DedupeNumbers sorts the requested numbers and drops duplicates
func DedupeNumbers(numbers []int) []int {
	seen := make(map[int]bool, len(numbers))
	out := make([]int, 0, len(numbers))
	for _, n := range numbers {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Ints(out)
	return out
}
