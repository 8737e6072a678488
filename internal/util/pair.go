package util

import "fmt"

// PairKey builds the order-sensitive cache key for a base/quote pair.
func PairKey(baseID, quoteID string) string {
	return fmt.Sprintf("%s-%s", baseID, quoteID)
}
