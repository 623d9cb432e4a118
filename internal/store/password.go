package store

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for new hashes. Verification reads the parameters back
// from the encoded hash, so these can change without invalidating old ones.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// minPasswordScore is the strength gate for new passwords on a 0-100 scale.
const minPasswordScore = 80

// passwordAnalysis is a single pass over the password: class counts plus the
// pattern counts the score deducts for.
type passwordAnalysis struct {
	length      int
	uppers      int
	lowers      int
	digits      int
	symbols     int
	middle      int // digits/symbols not in first or last position
	consecutive int // adjacent same-class pairs (aaa counts twice)
	sequential  int // runs of 3+ stepping letters or digits, per window
	repeats     int // occurrences of characters appearing more than once
}

func analyzePassword(password string) passwordAnalysis {
	runes := []rune(password)
	a := passwordAnalysis{length: len(runes)}

	class := func(r rune) int {
		switch {
		case unicode.IsUpper(r):
			return 0
		case unicode.IsLower(r):
			return 1
		case unicode.IsDigit(r):
			return 2
		case unicode.IsSpace(r):
			return 3
		default:
			return 4
		}
	}

	seen := make(map[rune]int, len(runes))
	for i, r := range runes {
		switch class(r) {
		case 0:
			a.uppers++
		case 1:
			a.lowers++
		case 2:
			a.digits++
		case 4:
			a.symbols++
		}
		if i > 0 && i < len(runes)-1 {
			if c := class(r); c == 2 || c == 4 {
				a.middle++
			}
		}
		if i > 0 && class(r) != 3 && class(r) == class(runes[i-1]) {
			a.consecutive++
		}
		seen[unicode.ToLower(r)]++
	}
	for _, n := range seen {
		if n > 1 {
			a.repeats += n
		}
	}

	// Runs like "abc", "cba" or "456", counted per 3-character window.
	step := func(x, y rune) (int, bool) {
		x, y = unicode.ToLower(x), unicode.ToLower(y)
		sameKind := (unicode.IsLetter(x) && unicode.IsLetter(y)) ||
			(unicode.IsDigit(x) && unicode.IsDigit(y))
		if !sameKind {
			return 0, false
		}
		if y == x+1 {
			return 1, true
		}
		if y == x-1 {
			return -1, true
		}
		return 0, false
	}
	for i := 2; i < len(runes); i++ {
		d1, ok1 := step(runes[i-2], runes[i-1])
		d2, ok2 := step(runes[i-1], runes[i])
		if ok1 && ok2 && d1 == d2 {
			a.sequential++
		}
	}
	return a
}

// passwordScore rates a candidate password from 0 to 100 with a
// length/character-class formula: points for length and class variety,
// deductions for single-class passwords, same-class runs, stepping sequences
// and repeated characters. "Str0ng!Pass123" clears the 80 gate;
// "password1"-class inputs land far below it.
func passwordScore(password string) int {
	a := analyzePassword(password)
	if a.length == 0 {
		return 0
	}

	score := a.length * 4
	if a.uppers > 0 {
		score += (a.length - a.uppers) * 2
	}
	if a.lowers > 0 {
		score += (a.length - a.lowers) * 2
	}
	score += a.digits * 4
	score += a.symbols * 6
	score += a.middle * 2

	// Variety bonus only when the password covers most classes.
	met := 0
	if a.length >= 8 {
		met++
	}
	for _, n := range []int{a.uppers, a.lowers, a.digits, a.symbols} {
		if n > 0 {
			met++
		}
	}
	if met >= 4 {
		score += met * 2
	}

	letters := a.uppers + a.lowers
	if letters == a.length {
		score -= a.length
	}
	if a.digits == a.length {
		score -= a.length
	}
	score -= a.consecutive * 2
	score -= a.sequential * 3
	score -= a.repeats

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// hashPassword derives an Argon2id hash with a fresh random salt and encodes
// it in the standard $argon2id$... form.
func hashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// verifyPassword checks password against an encoded Argon2id hash in constant
// time. A malformed hash is an error, not a mismatch.
func verifyPassword(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, errors.New("malformed password hash")
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, err
	}
	if version != argon2.Version {
		return false, fmt.Errorf("unsupported argon2 version %d", version)
	}
	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, err
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, err
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, err
	}
	got := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
