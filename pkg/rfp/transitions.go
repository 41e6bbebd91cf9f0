package rfp

// Kind enumerates the page variants of the RFP interface.
type Kind string

const (
	KindInbox          Kind = "inbox"
	KindSearchForPayee Kind = "search_for_payee"
	KindRequestRFP     Kind = "request_rfp"
	KindViewAndEdit    Kind = "view_and_edit"
	KindViewOnly       Kind = "view_only"
	KindAttachReceipt  Kind = "attach_receipt"
	KindSendTo         Kind = "send_to"
	KindSearch         Kind = "search"
)

var validKinds = map[Kind]bool{
	KindInbox:          true,
	KindSearchForPayee: true,
	KindRequestRFP:     true,
	KindViewAndEdit:    true,
	KindViewOnly:       true,
	KindAttachReceipt:  true,
	KindSendTo:         true,
	KindSearch:         true,
}

// IsValid returns true if k names a page variant.
func (k Kind) IsValid() bool {
	return validKinds[k]
}

func (k Kind) String() string {
	return string(k)
}

// Action names used in the transition table.
const (
	ActionSelect        = "select"
	ActionClone         = "clone"
	ActionSearch        = "search"
	ActionResults       = "results"
	ActionChangePayee   = "change_payee"
	ActionSave          = "save"
	ActionAttachReceipt = "attach_receipt"
	ActionSendTo        = "send_to"
	ActionCancel        = "cancel"
	ActionAttach        = "attach"
	ActionSend          = "send"
	ActionReturnToRFP   = "return_to_rfp"
)

// Transition is one edge of the page graph.
type Transition struct {
	From   Kind
	Action string
	To     Kind
}

// transitions is the complete navigation graph. An action listed twice
// has a destination decided by the page that loads.
var transitions = []Transition{
	{KindInbox, ActionSelect, KindViewAndEdit},
	{KindInbox, ActionClone, KindViewAndEdit},
	{KindSearchForPayee, ActionSearch, KindSearchForPayee},
	{KindSearchForPayee, ActionResults, KindRequestRFP},
	{KindRequestRFP, ActionChangePayee, KindSearchForPayee},
	{KindRequestRFP, ActionSave, KindAttachReceipt},
	{KindViewAndEdit, ActionChangePayee, KindSearchForPayee},
	{KindViewAndEdit, ActionSave, KindViewAndEdit},
	{KindViewAndEdit, ActionAttachReceipt, KindAttachReceipt},
	{KindViewAndEdit, ActionSendTo, KindSendTo},
	{KindAttachReceipt, ActionCancel, KindViewAndEdit},
	{KindAttachReceipt, ActionCancel, KindViewOnly},
	{KindAttachReceipt, ActionAttach, KindViewAndEdit},
	{KindAttachReceipt, ActionAttach, KindViewOnly},
	{KindSendTo, ActionSearch, KindSendTo},
	{KindSendTo, ActionSend, KindViewOnly},
	{KindSendTo, ActionReturnToRFP, KindViewAndEdit},
	{KindSearch, ActionSearch, KindViewOnly},
	{KindSearch, ActionSearch, KindSearch},
	{KindSearch, ActionResults, KindViewOnly},
	{KindViewOnly, ActionAttachReceipt, KindAttachReceipt},
}

// entryKinds are reachable by direct navigation.
var entryKinds = map[Kind]bool{
	KindInbox:          true,
	KindSearchForPayee: true,
	KindSearch:         true,
}

// Transitions returns a copy of the navigation graph.
func Transitions() []Transition {
	out := make([]Transition, len(transitions))
	copy(out, transitions)
	return out
}

// CanTransition reports whether action on from may land on to.
func CanTransition(from Kind, action string, to Kind) bool {
	for _, t := range transitions {
		if t.From == from && t.Action == action && t.To == to {
			return true
		}
	}
	return false
}

// IsEntry reports whether k can be opened directly by URL.
func IsEntry(k Kind) bool {
	return entryKinds[k]
}

// logTransition records a completed move between pages.
func logTransition(from Kind, action string, to Kind) {
	if !CanTransition(from, action, to) {
		debugLog.Errorf("undeclared transition %s -> %s via %s", from, to, action)
		return
	}
	debugLog.Debugf("%s -> %s via %s", from, to, action)
}
