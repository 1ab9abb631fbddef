package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxFirebaseUID   = "firebase_uid"
	CtxEmail         = "email"
	CtxFirebaseToken = "firebase_token"
)

// UserFirebaseUID extracts the Firebase UID from the Gin context
// This is set by FirebaseAuthMiddleware
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// CurrentIdentity returns the verified identity stored by FirebaseAuthMiddleware, or nil.
func CurrentIdentity(c *gin.Context) *Identity {
	v, ok := c.Get(CtxFirebaseToken)
	if !ok {
		return nil
	}
	id, _ := v.(*Identity)
	return id
}
