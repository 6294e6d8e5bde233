package cart

import (
	"encoding/json"

	"github.com/meridian-pos/meridian-pos/internal/shared"
)

const sessionKey = "cart"

// FromSession decodes the staged cart from the session, returning an empty
// cart when none is staged or the payload is unreadable.
func FromSession(sess *shared.Session) Cart {
	var c Cart
	if sess == nil {
		return c
	}
	raw := sess.Get(sessionKey)
	if raw == "" {
		return c
	}
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return Cart{}
	}
	return c
}

// ToSession stores the cart back into the session.
func ToSession(sess *shared.Session, c Cart) {
	if sess == nil {
		return
	}
	if len(c.Lines) == 0 {
		sess.Delete(sessionKey)
		return
	}
	data, err := json.Marshal(c)
	if err != nil {
		return
	}
	sess.Set(sessionKey, string(data))
}
