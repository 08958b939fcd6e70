package redis

import "fmt"

const (
	// KeyPrefixRecommendation is the prefix for recommendation blobs
	KeyPrefixRecommendation = "recs:recommendation:"
	// KeyAllRecommendations is the sorted set of IDs scored by creation time
	KeyAllRecommendations = "recs:recommendations:all"
)

// RecommendationKey returns the Redis key for a recommendation by ID
func RecommendationKey(id string) string {
	return KeyPrefixRecommendation + id
}

// AllRecommendationsKey returns the key of the creation-ordered ID index
func AllRecommendationsKey() string {
	return KeyAllRecommendations
}

// ExtractRecommendationID extracts the recommendation ID from a Redis key
func ExtractRecommendationID(key string) (string, error) {
	if len(key) <= len(KeyPrefixRecommendation) || key[:len(KeyPrefixRecommendation)] != KeyPrefixRecommendation {
		return "", fmt.Errorf("invalid recommendation key: %s", key)
	}
	return key[len(KeyPrefixRecommendation):], nil
}
