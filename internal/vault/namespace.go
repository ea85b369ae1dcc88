package vault

// Resolver produces the key-value store namespace under which the token
// record's four fixed keys live. The vault treats the result as an opaque
// string; stability across calls is the resolver's responsibility.
type Resolver interface {
	Namespace() string
}

// namespaceSuffix separates the vault's section of the store from anything
// else the host application keeps there.
const namespaceSuffix = ".sdk"

type appResolver struct {
	appID string
}

// NewAppResolver returns the default [Resolver]: the host application
// identifier with the fixed ".sdk" suffix, e.g. "com.example.app.sdk".
func NewAppResolver(appID string) Resolver {
	return &appResolver{appID: appID}
}

func (r *appResolver) Namespace() string {
	return r.appID + namespaceSuffix
}
