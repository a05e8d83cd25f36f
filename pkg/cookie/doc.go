// Package cookie reads and writes browser cookies with shared defaults.
//
// Values are base64url-encoded so arbitrary bytes (JSON included) survive the
// cookie syntax. With a secret of at least 32 bytes, values can also be signed
// with HMAC-SHA256 so tampered cookies are rejected on read.
package cookie
