package common

// Outbound HTTP header names.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
)

// BearerPrefix precedes the access token in the Authorization header.
const BearerPrefix = "Bearer "

// WipeByteArray overwrites b with zeros. It is used for OTP codes read from
// the terminal. A nil slice is ignored.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
