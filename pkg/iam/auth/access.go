package auth

import "github.com/Abraxas-365/jobboard/pkg/kernel"

// Relation is how a caller stands toward a resource
type Relation int

const (
	RelationOther Relation = iota
	RelationOwner
	RelationStaff
)

func (r Relation) String() string {
	switch r {
	case RelationStaff:
		return "staff"
	case RelationOwner:
		return "owner"
	default:
		return "other"
	}
}

// RelationTo evaluates the caller against the owners of a resource.
// Staff wins over ownership; a nil caller is always "other".
func RelationTo(ac *AuthContext, owners ...kernel.UserID) Relation {
	if !ac.IsAuthenticated() {
		return RelationOther
	}
	if ac.IsStaff {
		return RelationStaff
	}
	for _, owner := range owners {
		if !owner.IsEmpty() && owner == *ac.UserID {
			return RelationOwner
		}
	}
	return RelationOther
}

// CanManage reports whether the caller may modify a resource owned by owners
func CanManage(ac *AuthContext, owners ...kernel.UserID) bool {
	return RelationTo(ac, owners...) != RelationOther
}
