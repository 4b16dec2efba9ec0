// Package fingerprint computes session tokens that bind a session to a client.
//
// A token is the hex digest of "address|user-agent". The address is the raw
// client address from clientip.Address, optionally reduced to its network
// (/24 for IPv4, /64 for IPv6). A missing User-Agent is replaced with
// "no user agent". The same input always yields the same 64-character token.
//
//	gen := fingerprint.NewGenerator(
//		fingerprint.WithGranularity(fingerprint.GranularityNetwork),
//	)
//	token := gen.FromRequest(r)
//
// SHA-256 is the default digest; BLAKE2b-256 is available with WithHash.
//
// # Security Notes
//
// Address and User-Agent are client-controlled and change legitimately: mobile
// networks hop addresses and browsers update. Network granularity trades some
// precision for fewer false positives.
package fingerprint
