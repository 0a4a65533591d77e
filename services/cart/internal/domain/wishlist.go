package domain

// Wishlist is the set of records a session has saved for later.
type Wishlist struct {
	SessionID string   `json:"session_id"`
	RecordIDs []string `json:"record_ids"`
}

// Contains reports whether recordID is on the wishlist.
func (w Wishlist) Contains(recordID string) bool {
	for _, id := range w.RecordIDs {
		if id == recordID {
			return true
		}
	}
	return false
}
