package dotenv

import (
	"strings"

	"github.com/joho/godotenv"

	"github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/model"
)

// MaskedValue replaces the value of a sensitive key.
const MaskedValue = "******"

// Masker hides values whose key contains one of a set of fragments (case-insensitive).
// A nil Masker masks nothing.
type Masker struct {
	fragments []string
}

// NewMasker builds a Masker from key fragments such as "password" or "token".
func NewMasker(fragments []string) *Masker {
	m := &Masker{}
	for _, f := range fragments {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			m.fragments = append(m.fragments, f)
		}
	}
	return m
}

// IsSensitive reports whether key should be masked.
func (m *Masker) IsSensitive(key string) bool {
	if m == nil {
		return false
	}
	lower := strings.ToLower(key)
	for _, f := range m.fragments {
		if strings.Contains(lower, f) {
			return true
		}
	}
	return false
}

// Mask returns value, or MaskedValue when key is sensitive.
func (m *Masker) Mask(key, value string) string {
	if m.IsSensitive(key) {
		return MaskedValue
	}
	return value
}

// Marshal renders the effective assignments (last occurrence of each key) in dotenv format,
// sorted by key, with sensitive values masked.
func Marshal(assignments []model.Assignment, masker *Masker) (string, error) {
	vars := make(map[string]string, len(assignments))
	for _, a := range assignments {
		vars[a.Key] = masker.Mask(a.Key, a.Value)
	}
	return godotenv.Marshal(vars)
}
