package password

import (
	"github.com/alexedwards/argon2id"
	"go.uber.org/zap"
)

var argonParams = &argon2id.Params{
	Memory:      64 * 1024, // 64 MiB
	Iterations:  2,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

type Hasher struct {
	params *argon2id.Params
	pepper string
	log    *zap.Logger
}

type Option func(*Hasher)

// WithParams overrides the Argon2id cost parameters. Stored hashes keep the
// parameters they were created with, so changing them does not break
// verification of existing users.
func WithParams(p *argon2id.Params) Option {
	return func(h *Hasher) { h.params = p }
}

func NewHasher(pepper string, log *zap.Logger, opts ...Option) *Hasher {
	if log == nil {
		log = zap.NewNop()
	}
	h := &Hasher{params: argonParams, pepper: pepper, log: log}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hash returns an encoded Argon2id hash with a fresh random salt.
func (h *Hasher) Hash(password string) (string, error) {
	return argon2id.CreateHash(password+h.pepper, h.params)
}

// Verify reports whether password matches the stored hash. A stored hash that
// cannot be decoded is logged and treated as a mismatch.
func (h *Hasher) Verify(password, storedHash string) bool {
	ok, err := argon2id.ComparePasswordAndHash(password+h.pepper, storedHash)
	if err != nil {
		h.log.Error("stored password hash is corrupt", zap.Error(err))
		return false
	}
	return ok
}
