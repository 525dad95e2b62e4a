package orderflow

import (
	"context"
	"net/http"
	"time"

	"github.com/funkyshop/storefront/lib/myerrors"
	"github.com/funkyshop/storefront/lib/mystore"
	"github.com/funkyshop/storefront/lib/myuuid"
)

// The session cookie is the only thing the browser holds: all flow state lives in the
// session record behind it.
const cookieName = "storefront_session"

func SessionUIDFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// EnsureSessionUID returns the session uid from the request cookie, minting a new uid
// and setting the cookie when the browser does not have one yet.
func EnsureSessionUID(w http.ResponseWriter, r *http.Request, uuider myuuid.UUIDer) string {
	uid, found := SessionUIDFromRequest(r)
	if found {
		return uid
	}

	uid = uuider.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    uid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return uid
}

// GetOrCreate fetches the flow session with the given uid, creating a fresh one in the
// Drafting state when none exists yet. A session whose slots were written by an older
// schema is deleted and replaced. A session whose flow completed restarts at Drafting
// on the next touch.
func GetOrCreate(c context.Context, store mystore.Store[FlowSession], uid string, now time.Time) (FlowSession, error) {
	session, found, err := store.Get(c, uid)
	if err != nil {
		return FlowSession{}, myerrors.NewInternalError(err)
	}
	if found && session.hasStaleSlots() {
		if err := store.Delete(c, uid); err != nil {
			return FlowSession{}, myerrors.NewInternalError(err)
		}
		found = false
	}
	if found {
		if session.State == StateConfirmed || session.State == StatePaymentConfirmed {
			session.State = StateDrafting
		}
		return session, nil
	}

	session = NewFlowSession(uid, now)
	err = store.Put(c, uid, session)
	if err != nil {
		return FlowSession{}, myerrors.NewInternalError(err)
	}

	return session, nil
}
