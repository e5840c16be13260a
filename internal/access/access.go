// Package access owns every visibility and ownership decision. Each list
// query path must be built through one of its scopes so no endpoint can
// forget the predicate; direct reads and mutations go through CanViewItem
// and CanMutate.
package access

import (
	"github.com/monooki-app/monooki-backend/internal/identity"
	"github.com/monooki-app/monooki-backend/internal/model"
	"gorm.io/gorm"
)

// Scope is a predicate fragment applied to a collection query.
type Scope func(*gorm.DB) *gorm.DB

// ItemListScope restricts an item list query per the list policy:
// authenticated callers see only their own rows; anonymous callers see only
// public rows. Other users' public items stay reachable by direct id fetch.
func ItemListScope(ident *identity.Identity) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if ident.Authenticated() {
			return db.Where("owner_user_id = ?", ident.UserID)
		}
		return db.Where("visibility = ?", model.VisibilityPublic)
	}
}

// OwnedScope restricts a query over an owner-only collection (categories,
// locations, authors, position schemas, stock history). Anonymous callers
// match nothing.
func OwnedScope(ident *identity.Identity) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if ident.Authenticated() {
			return db.Where("owner_user_id = ?", ident.UserID)
		}
		return db.Where("1 = 0")
	}
}

// CanViewItem is the direct-access decision for GET by id: the owner always
// may, anyone may fetch a public item, and a private item opens to a caller
// whose email is whitelisted for that one item. whitelisted must already
// reflect a lookup of ident's normalized email against the item.
func CanViewItem(ident *identity.Identity, item *model.Item, whitelisted bool) bool {
	if ident.Authenticated() && ident.UserID == item.OwnerUserID {
		return true
	}
	if item.Visibility == model.VisibilityPublic {
		return true
	}
	return whitelisted
}

// CanMutate requires strict ownership. Public visibility never grants
// write access.
func CanMutate(ident *identity.Identity, ownerUserID string) bool {
	return ident.Authenticated() && ident.UserID == ownerUserID
}
