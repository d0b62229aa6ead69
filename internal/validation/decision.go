package validation

import "golang.org/x/net/html"

// Action names the mutation a validation error would trigger.
type Action string

const (
	ActionRemoveNode          Action = "remove_node"
	ActionReplaceWithChildren Action = "replace_with_children"
	ActionRemoveAttribute     Action = "remove_attribute"
	ActionRewriteAttribute    Action = "rewrite_attribute"
)

// Context describes where an error was raised when it is offered to a
// Decider.
type Context struct {
	Root   *html.Node
	Action Action
}

// Decider decides whether an error should be fixed (true) or only
// reported, leaving the offending node or attribute exempt (false).
type Decider func(Error, Context) bool

// AcceptAll fixes every error.
func AcceptAll(Error, Context) bool { return true }

// RejectAll fixes nothing.
func RejectAll(Error, Context) bool { return false }

// RejectCodes fixes everything except errors whose code is in codes.
func RejectCodes(codes ...Code) Decider {
	set := make(map[Code]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return func(e Error, _ Context) bool {
		_, rejected := set[e.Code]
		return !rejected
	}
}
