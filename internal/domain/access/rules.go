package access

type requirement int

const (
	requireDenied requirement = iota
	requireParticipant
	requireOwner
	requireCreator
)

func requirementFor(kind Kind, action Action, private bool) requirement {
	switch kind {
	case KindTrip:
		switch action {
		case ActionView:
			return requireParticipant
		case ActionEdit, ActionDelete:
			return requireOwner
		}
	case KindMembers:
		if action == ActionView {
			return requireParticipant
		}
	case KindInvite:
		switch action {
		case ActionView, ActionCreate, ActionDelete:
			return requireOwner
		}
	case KindNote:
		switch action {
		case ActionView:
			if private {
				return requireCreator
			}
			return requireParticipant
		case ActionCreate:
			return requireParticipant
		case ActionEdit, ActionDelete:
			return requireCreator
		}
	case KindPackingList:
		if private {
			if action == ActionCreate {
				return requireParticipant
			}
			return requireCreator
		}
		switch action {
		case ActionView, ActionEdit:
			return requireParticipant
		case ActionCreate, ActionDelete:
			return requireOwner
		}
	case KindPackingItem:
		if private {
			return requireCreator
		}
		switch action {
		case ActionView, ActionCreate, ActionEdit:
			return requireParticipant
		case ActionDelete:
			return requireOwner
		}
	case KindShoppingList:
		switch action {
		case ActionView, ActionEdit:
			return requireParticipant
		case ActionCreate, ActionDelete:
			return requireOwner
		}
	case KindShoppingItem:
		return requireParticipant
	}
	return requireDenied
}
