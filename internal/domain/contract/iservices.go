package contract

// IHasher hashes and verifies passwords and opaque tokens.
type IHasher interface {
	HashPassword(password string) (string, error)
	ComparePasswordHash(password, hashedPassword string) error
	HashString(s string) string
	CheckHash(s, hash string) bool
}

// IUUIDGenerator produces unique identifiers.
type IUUIDGenerator interface {
	NewUUID() string
}
