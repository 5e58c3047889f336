package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"
)

const verifiedKeyTTL = 5 * time.Minute

type APIKey struct {
	Name string
	Role Role
	Hash []byte
}

// ParseAPIKeys reads comma separated name:role:bcrypthash entries.
func ParseAPIKeys(spec string) ([]APIKey, error) {
	var out []APIKey
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
			return nil, fmt.Errorf("api key entry %q: want name:role:hash", entry)
		}
		role, err := ParseRole(parts[1])
		if err != nil {
			return nil, fmt.Errorf("api key %s: %w", parts[0], err)
		}
		if _, err := bcrypt.Cost([]byte(parts[2])); err != nil {
			return nil, fmt.Errorf("api key %s: %w", parts[0], err)
		}
		out = append(out, APIKey{Name: parts[0], Role: role, Hash: []byte(parts[2])})
	}
	return out, nil
}

func HashKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash api key: %w", err)
	}
	return string(hash), nil
}

// KeyStore verifies presented API keys against bcrypt hashes. A key that
// verified once is remembered by its SHA-256 for verifiedKeyTTL.
type KeyStore struct {
	keys     []APIKey
	verified *gocache.Cache
}

func NewKeyStore(keys []APIKey) *KeyStore {
	return &KeyStore{
		keys:     keys,
		verified: gocache.New(verifiedKeyTTL, 2*verifiedKeyTTL),
	}
}

func (s *KeyStore) Verify(presented string) (Principal, bool) {
	if presented == "" || len(s.keys) == 0 {
		return Principal{}, false
	}

	sum := sha256.Sum256([]byte(presented))
	digest := hex.EncodeToString(sum[:])
	if p, ok := s.verified.Get(digest); ok {
		return p.(Principal), true
	}

	for _, k := range s.keys {
		if bcrypt.CompareHashAndPassword(k.Hash, []byte(presented)) == nil {
			p := Principal{Subject: k.Name, Role: k.Role, Method: "api_key"}
			s.verified.SetDefault(digest, p)
			return p, true
		}
	}
	return Principal{}, false
}
