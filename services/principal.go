package services

import "go.mongodb.org/mongo-driver/bson/primitive"

// Principal is the authenticated identity resolved once per request by the
// auth middleware and passed explicitly into every lifecycle operation.
type Principal struct {
	UserID primitive.ObjectID
	Admin  bool
}

// CanManage reports whether the principal may act on a resource owned by
// ownerID: the owner themselves, or any admin.
func (p Principal) CanManage(ownerID primitive.ObjectID) bool {
	return p.Admin || p.UserID == ownerID
}
