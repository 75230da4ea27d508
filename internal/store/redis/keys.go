package redis

const (
	// KeyPrefix namespaces every key notary writes.
	KeyPrefix = "notary:"
)

// CardsKey returns the Redis key holding the serialized card collection.
// Example: CardsKey("savedCards") -> "notary:savedCards"
func CardsKey(name string) string {
	return KeyPrefix + name
}
