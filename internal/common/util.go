package common

// WipeByteArray overwrites the contents of b with zeros. It is used to drop
// passwords read from the terminal as soon as they are sent.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
