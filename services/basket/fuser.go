package basket

import (
	"net/http"
	"time"

	"github.com/MarcGrol/shopbasket/lib/myuuid"
)

const (
	fuserCookieName   = "SALE_UID"
	fuserCookieMaxAge = 365 * 24 * time.Hour
)

// resolveFuser identifies the visitor by cookie and issues a new identity when there is none
func resolveFuser(w http.ResponseWriter, r *http.Request, uuider myuuid.UUIDer) string {
	cookie, err := r.Cookie(fuserCookieName)
	if err == nil && myuuid.IsValid(cookie.Value) {
		return cookie.Value
	}

	fuserUID := uuider.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     fuserCookieName,
		Value:    fuserUID,
		Path:     "/",
		MaxAge:   int(fuserCookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return fuserUID
}
