package constants

// ContextKeyUserID is the session/context key carrying the authenticated
// user id.
const ContextKeyUserID = "user_id"

// MinPasswordLength is the minimum accepted password length on user creation.
const MinPasswordLength = 8

// DefaultMessageLimit bounds message-log reads when the client gives no limit.
const DefaultMessageLimit = 50

// MaxMessageLimit caps the per-request message window.
const MaxMessageLimit = 200

// MaxUploadBytes caps attachment uploads (16MB, matching the transport cap).
const MaxUploadBytes = 16 << 20
