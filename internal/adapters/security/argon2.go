package security

import "github.com/alexedwards/argon2id"

type Argon2Hasher struct{ params *argon2id.Params }

// NewArgon2 uses argon2id.DefaultParams when p is nil.
func NewArgon2(p *argon2id.Params) *Argon2Hasher {
	if p == nil {
		p = argon2id.DefaultParams
	}
	return &Argon2Hasher{params: p}
}

func (h *Argon2Hasher) Hash(secret string) (string, error) {
	return argon2id.CreateHash(secret, h.params)
}

func (h *Argon2Hasher) Compare(secret, hash string) (bool, error) {
	return argon2id.ComparePasswordAndHash(secret, hash)
}

// TestParams are cheap settings for tests only.
var TestParams = &argon2id.Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
