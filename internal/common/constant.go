package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// SessionCookieName is the HTTP cookie that carries the access token
// for browser clients of the gateway.
const SessionCookieName = "session"
