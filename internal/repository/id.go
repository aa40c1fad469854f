package repository

import (
	"math/rand"
	"strconv"
	"time"
)

const idRandomChars = 6

// NewPayloadID generates a URL-safe payload id: current unix
// milliseconds in base 36 plus a short random base-36 suffix.
// Uniqueness is best-effort; collisions are acceptably rare for a
// share-link store and are not defended against.
func NewPayloadID() string {
	id := strconv.FormatInt(time.Now().UnixMilli(), 36)
	for i := 0; i < idRandomChars; i++ {
		id += string(base36[rand.Intn(len(base36))])
	}
	return id
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// ValidPayloadID reports whether id is non-empty and uses only the
// characters ids are generated from. Gate before any path or key use.
func ValidPayloadID(id string) bool {
	if id == "" || len(id) > 64 {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}
