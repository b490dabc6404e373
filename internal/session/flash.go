package session

import (
	"encoding/base64"
	"net/http"
)

const flashCookieName = "flash"

// SetFlash stores a one-shot message for the next rendered page. The value is
// base64-encoded because cookie values cannot carry spaces or punctuation.
func SetFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.URLEncoding.EncodeToString([]byte(message)),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// TakeFlash reads any pending flash message from the request and clears the
// cookie so the message is shown exactly once.
func TakeFlash(w http.ResponseWriter, r *http.Request) []string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	decoded, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil || len(decoded) == 0 {
		return nil
	}
	return []string{string(decoded)}
}
