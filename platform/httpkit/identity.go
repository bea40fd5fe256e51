// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity represents the caller's identity on org-scoped routes.
// This abstracts identity extraction from the web framework so handlers
// can access tenant/user information without depending on Gin internals.
type Identity interface {
	// UserID returns the authenticated user's ID, or uuid.Nil when anonymous.
	UserID() uuid.UUID
	// OrgID returns the caller's organization ID.
	OrgID() uuid.UUID
	// IsAuthenticated returns true if a user identity is present.
	IsAuthenticated() bool
}

type identity struct {
	userID        uuid.UUID
	orgID         uuid.UUID
	authenticated bool
}

func (i *identity) UserID() uuid.UUID {
	return i.userID
}

func (i *identity) OrgID() uuid.UUID {
	return i.orgID
}

func (i *identity) IsAuthenticated() bool {
	return i.authenticated
}

// GetIdentity extracts the Identity from a Gin context.
func GetIdentity(c *gin.Context) Identity {
	out := &identity{}

	if userID, ok := c.Get(ContextUserIDKey); ok {
		if uid, ok := userID.(uuid.UUID); ok {
			out.userID = uid
			out.authenticated = true
		}
	}

	if orgID, ok := c.Get(ContextOrgIDKey); ok {
		if oid, ok := orgID.(uuid.UUID); ok {
			out.orgID = oid
		}
	}

	return out
}

// MustGetOrgID extracts the organization ID from a Gin context.
// Aborts with 400 when the OrgRequired middleware did not run (or the header
// was absent) and returns false.
func MustGetOrgID(c *gin.Context) (uuid.UUID, bool) {
	id := GetIdentity(c)
	if id.OrgID() == uuid.Nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "X-Org-Id header is required"})
		return uuid.Nil, false
	}
	return id.OrgID(), true
}
