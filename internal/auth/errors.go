package auth

import "errors"

// FailureKind is the closed classification of authentication failures,
// mapped to the user-facing messages the sign-in surface shows. Anything
// the classifier does not recognize falls back to Unclassified.
type FailureKind string

const (
	EmailInUse     FailureKind = "email-already-in-use"
	WeakPassword   FailureKind = "weak-password"
	InvalidEmail   FailureKind = "invalid-email"
	NameRequired   FailureKind = "name-required"
	BadCredential  FailureKind = "invalid-credential"
	PopupDismissed FailureKind = "popup-closed-by-user"
	Unclassified   FailureKind = "unclassified"
)

var (
	ErrEmailInUse     = errors.New("email already registered")
	ErrWeakPassword   = errors.New("password too short")
	ErrInvalidEmail   = errors.New("invalid email address")
	ErrNameRequired   = errors.New("name is required")
	ErrBadCredential  = errors.New("invalid email or password")
	ErrPopupDismissed = errors.New("sign-in cancelled")
)

var messages = map[FailureKind]string{
	EmailInUse:     "This email is already registered. Try logging in.",
	WeakPassword:   "Password should be at least 6 characters.",
	InvalidEmail:   "Please enter a valid email address.",
	NameRequired:   "Please enter your name.",
	BadCredential:  "Invalid email or password.",
	PopupDismissed: "Sign-in cancelled.",
	Unclassified:   "Something went wrong. Please try again.",
}

// Classify maps an authentication error onto its failure kind.
func Classify(err error) FailureKind {
	switch {
	case errors.Is(err, ErrEmailInUse):
		return EmailInUse
	case errors.Is(err, ErrWeakPassword):
		return WeakPassword
	case errors.Is(err, ErrInvalidEmail):
		return InvalidEmail
	case errors.Is(err, ErrNameRequired):
		return NameRequired
	case errors.Is(err, ErrBadCredential):
		return BadCredential
	case errors.Is(err, ErrPopupDismissed):
		return PopupDismissed
	default:
		return Unclassified
	}
}

// Message returns the user-facing text for a failure kind.
func Message(kind FailureKind) string {
	if msg, ok := messages[kind]; ok {
		return msg
	}
	return messages[Unclassified]
}
