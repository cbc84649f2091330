package domain

import (
	"encoding/json"
	"strings"
)

// Visibility is the declared accessibility of a function.
type Visibility uint8

const (
	// VisibilityPrivate is callable only from the declaring module.
	VisibilityPrivate Visibility = iota
	// VisibilityFriend is callable from declared friend modules.
	VisibilityFriend
	// VisibilityPublic is callable from any module.
	VisibilityPublic
)

// String returns the PascalCase name used by the normalized-module RPC.
func (v Visibility) String() string {
	switch v {
	case VisibilityPrivate:
		return "Private"
	case VisibilityFriend:
		return "Friend"
	case VisibilityPublic:
		return "Public"
	default:
		return "Unknown"
	}
}

// ParseVisibility maps a visibility token in any case to a Visibility.
// "public(friend)" and "public(package)" are accepted as Friend.
func ParseVisibility(token string) (Visibility, bool) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "private":
		return VisibilityPrivate, true
	case "friend", "public(friend)", "public(package)", "package":
		return VisibilityFriend, true
	case "public":
		return VisibilityPublic, true
	default:
		return 0, false
	}
}

// MarshalJSON encodes the visibility as its String form.
func (v Visibility) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}
