package security

import (
	"crypto/rand"
	"io"
	"math/big"
	"strings"

	"github.com/leeforge/devkit/errors"
)

const (
	MinPasswordLength = 4

	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	numberChars = "0123456789"
	symbolChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// PasswordOptions selects the length and character classes of a password.
type PasswordOptions struct {
	Length           int  `json:"length" default:"16"`
	IncludeUppercase bool `json:"include_uppercase"`
	IncludeLowercase bool `json:"include_lowercase"`
	IncludeNumbers   bool `json:"include_numbers"`
	IncludeSymbols   bool `json:"include_symbols"`
}

// DefaultPasswordOptions enables every class.
func DefaultPasswordOptions() PasswordOptions {
	return PasswordOptions{
		Length:           16,
		IncludeUppercase: true,
		IncludeLowercase: true,
		IncludeNumbers:   true,
		IncludeSymbols:   true,
	}
}

// charset concatenates the selected classes in a fixed order.
func (o PasswordOptions) charset() string {
	var sb strings.Builder
	if o.IncludeUppercase {
		sb.WriteString(upperChars)
	}
	if o.IncludeLowercase {
		sb.WriteString(lowerChars)
	}
	if o.IncludeNumbers {
		sb.WriteString(numberChars)
	}
	if o.IncludeSymbols {
		sb.WriteString(symbolChars)
	}
	return sb.String()
}

// PasswordGenerator draws passwords from an injected entropy source.
type PasswordGenerator struct {
	rand io.Reader
}

// NewPasswordGenerator uses r for randomness; nil means crypto/rand.
func NewPasswordGenerator(r io.Reader) *PasswordGenerator {
	if r == nil {
		r = rand.Reader
	}
	return &PasswordGenerator{rand: r}
}

// Generate returns a password of exactly opts.Length characters, each drawn
// uniformly from the union of the selected classes.
func (g *PasswordGenerator) Generate(opts PasswordOptions) (string, error) {
	if opts.Length < MinPasswordLength {
		return "", errors.NewInvalidOptions("Password length must be at least 4 characters").
			WithDetail("length", opts.Length)
	}

	charset := opts.charset()
	if charset == "" {
		return "", errors.NewInvalidOptions("At least one character type must be selected")
	}

	limit := big.NewInt(int64(len(charset)))
	out := make([]byte, opts.Length)
	for i := range out {
		n, err := rand.Int(g.rand, limit)
		if err != nil {
			return "", errors.WrapWithType(err, errors.ErrorTypeInternal, "read random source").
				WithCode(errors.CodeInternalError)
		}
		out[i] = charset[n.Int64()]
	}
	return string(out), nil
}

// Strength grades a password for display.
type Strength struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}

const (
	StrengthWeak   = "Weak"
	StrengthFair   = "Fair"
	StrengthGood   = "Good"
	StrengthStrong = "Strong"
)

// EvaluateStrength scores length and character variety from 0 to 7.
func EvaluateStrength(password string) Strength {
	score := 0
	switch n := len([]rune(password)); {
	case n >= 12:
		score += 2
	case n >= 8:
		score++
	}
	if hasLower(password) {
		score++
	}
	if hasUpper(password) {
		score++
	}
	if hasNumber(password) {
		score++
	}
	if hasSpecial(password) {
		score += 2
	}

	label := StrengthStrong
	switch {
	case score <= 2:
		label = StrengthWeak
	case score <= 4:
		label = StrengthFair
	case score <= 6:
		label = StrengthGood
	}
	return Strength{Score: score, Label: label}
}

// MaskString hides all but the outer two characters, for logs.
func MaskString(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + "****" + s[len(s)-2:]
}

func hasUpper(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool { return r >= 'A' && r <= 'Z' })
}

func hasLower(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool { return r >= 'a' && r <= 'z' })
}

func hasNumber(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
}

// hasSpecial reports any character outside ASCII letters and digits.
func hasSpecial(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		return !(r >= 'A' && r <= 'Z') && !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
}
