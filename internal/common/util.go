package common

// WipeByteArray overwrites the contents of b with zeros. Encoded request
// bodies that carry a password are wiped once the request has been sent.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
