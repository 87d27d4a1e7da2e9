package auth

// Principal is the stable identifier issued for a caller by the external
// identity provider. The provider is consumed as an opaque boundary: the
// service only ever checks presence and anonymity.
type Principal string

// AnonymousPrincipal is the principal of an unauthenticated caller.
const AnonymousPrincipal Principal = "anonymous"

// IsAnonymous reports whether the principal denotes an unauthenticated caller.
func (p Principal) IsAnonymous() bool {
	return p == "" || p == AnonymousPrincipal
}

func (p Principal) String() string {
	return string(p)
}
