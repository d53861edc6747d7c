package utils

import "math/rand"

// URL-safe alphabet, same set the dashboard's nanoid uses.
const shortIDChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

// GenerateShortID returns a random identifier of the given length for use as
// the short-code portion of a short URL. Uniqueness is enforced by the
// database index, not here; callers retry on conflict.
func GenerateShortID(length int) string {
	id := make([]byte, length)
	for i := 0; i < length; i++ {
		id[i] = shortIDChars[rand.Intn(len(shortIDChars))]
	}
	return string(id)
}
