package domain

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	// IDAlphabet is URL-safe and lowercase so ids can be typed by hand.
	IDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	// IDLength gives 36^10 possible ids; collisions are not checked.
	IDLength = 10
)

// NewID returns a random bookmark id.
func NewID() (string, error) {
	return gonanoid.Generate(IDAlphabet, IDLength)
}
