package utils

import (
	"fmt"
	"net/http"
)

// RequireOwner rejects a mutation when the authenticated principal does not
// own the resource. Create and read paths never call this.
func RequireOwner(w http.ResponseWriter, ownerID, principalID uint, resource string) bool {
	if ownerID != principalID {
		http.Error(w, fmt.Sprintf("You are not the owner of this %s", resource), http.StatusForbidden)
		return false
	}
	return true
}
