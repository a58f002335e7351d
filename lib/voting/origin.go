package voting

import (
	"quadvote.io/quadvote/lib/errors"
)

// Origin is the authenticated caller of an operation as handed over by the
// authorization layer: a signed account, the administrative root, or nothing.
// The zero value is the unauthenticated origin.
type Origin struct {
	account string
	root    bool
}

func SignedOrigin(account string) Origin {
	return Origin{account: account}
}

func RootOrigin() Origin {
	return Origin{root: true}
}

func (o Origin) IsRoot() bool {
	return o.root
}

// Account returns the signing account, if any.
func (o Origin) Account() (string, bool) {
	if o.root || len(o.account) < 1 {
		return "", false
	}
	return o.account, true
}

// Signer returns the signing account or `NoPermission` for root and
// unauthenticated origins.
func (o Origin) Signer() (string, error) {
	account, ok := o.Account()
	if !ok {
		return "", errors.NoPermission
	}
	return account, nil
}
