package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"

	"passgate/internal/domain/service"
)

// OWASP-recommended argon2id parameters.
const (
	argon2Time    = 1         // iterations
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4         // parallelism
	argon2SaltLen = 16        // salt length in bytes
	argon2KeyLen  = 32        // output length in bytes
)

// argon2idHasher implements service.PasswordHasher using the argon2id
// memory-hard KDF, storing hashes in PHC string format:
// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
type argon2idHasher struct{}

// NewArgon2idHasher returns an argon2id-backed PasswordHasher.
func NewArgon2idHasher() service.PasswordHasher {
	return &argon2idHasher{}
}

// Hash produces an argon2id hash with a freshly generated random salt.
func (h *argon2idHasher) Hash(password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "salt generation failed")
	}

	hash := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory,
		argon2Time,
		argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)

	return encoded, nil
}

// Verify recomputes the hash with the parameters and salt embedded in the
// stored value and compares in constant time.
func (h *argon2idHasher) Verify(password, encodedHash string) (bool, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return false, errors.Wrap(service.ErrCorruptHash, "wrong field count")
	}
	if parts[1] != "argon2id" {
		return false, errors.Wrapf(service.ErrCorruptHash, "unsupported algorithm %q", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, errors.Wrap(service.ErrCorruptHash, "unreadable version")
	}

	var memory, time, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, errors.Wrap(service.ErrCorruptHash, "unreadable parameters")
	}
	// threads must fit in uint8 for argon2.IDKey.
	if threads == 0 || threads > 255 {
		return false, errors.Wrapf(service.ErrCorruptHash, "threads value %d out of range", threads)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, errors.Wrap(service.ErrCorruptHash, "undecodable salt")
	}

	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, errors.Wrap(service.ErrCorruptHash, "undecodable hash")
	}
	keyLen := len(expected)
	if keyLen == 0 || keyLen > 1<<10 {
		return false, errors.Wrapf(service.ErrCorruptHash, "invalid key length %d", keyLen)
	}

	computed := argon2.IDKey([]byte(password), salt, time, memory, uint8(threads), uint32(keyLen))

	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}
