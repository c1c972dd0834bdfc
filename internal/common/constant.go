// Package common contains shared constants and sentinel errors used across
// NicheScope components.
package common

// AppName is used for report titles, file names and the CLI banner.
const AppName = "NicheScope"

// Logical key layout of the key-value namespace. Stores add their own
// physical prefix on top of these (see kv.Prefixed).
const (
	KeyAccounts    = "accounts"
	KeySession     = "session"
	KeySavedPrefix = "saved_"
)

// SavedKey returns the per-account namespace key for saved niches.
func SavedKey(accountID string) string {
	return KeySavedPrefix + accountID
}
