package http

import "net/http"

// identityHeader carries the verified user id installed by the upstream auth
// proxy. The service never reads ambient session state; the caller's identity
// is always this explicit value.
const identityHeader = "X-User-ID"

// callerID extracts the verified caller identity, writing the auth_required
// response when it is absent.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get(identityHeader)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, codeAuthRequired, "authentication required")
		return "", false
	}
	return userID, true
}
