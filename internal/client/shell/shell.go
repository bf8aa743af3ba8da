// Package shell holds the navigation state of the terminal client. Every
// transition goes through Reduce, which has no side effects.
package shell

import "fmt"

type View int

const (
	ViewDashboard View = iota
	ViewSearch
	ViewFileDetails
	ViewUpload
	ViewUpgrade
)

func (v View) String() string {
	switch v {
	case ViewDashboard:
		return "dashboard"
	case ViewSearch:
		return "search"
	case ViewFileDetails:
		return "filedetails"
	case ViewUpload:
		return "upload"
	case ViewUpgrade:
		return "upgrade"
	default:
		return fmt.Sprintf("View(%d)", int(v))
	}
}

func (v View) valid() bool {
	return v >= ViewDashboard && v <= ViewUpgrade
}

// Views lists every view in menu order.
func Views() []View {
	return []View{ViewDashboard, ViewSearch, ViewFileDetails, ViewUpload, ViewUpgrade}
}

// ParseView maps a shell command to its view. "details" is accepted as a
// short form of "filedetails".
func ParseView(s string) (View, bool) {
	if s == "details" {
		return ViewFileDetails, true
	}
	for _, v := range Views() {
		if v.String() == s {
			return v, true
		}
	}
	return ViewDashboard, false
}

type State struct {
	Authenticated bool
	View          View
	UserID        string
}

// Action is one of SignIn, SignOut or Navigate.
type Action interface {
	isAction()
}

type SignIn struct {
	UserID string
}

type SignOut struct{}

type Navigate struct {
	To View
}

func (SignIn) isAction()   {}
func (SignOut) isAction()  {}
func (Navigate) isAction() {}

// Reduce returns the state that follows s after a. Unauthenticated states
// only react to SignIn; signing in always lands on the dashboard.
func Reduce(s State, a Action) State {
	if !s.Authenticated {
		if in, ok := a.(SignIn); ok && in.UserID != "" {
			return State{Authenticated: true, View: ViewDashboard, UserID: in.UserID}
		}
		return s
	}

	switch a := a.(type) {
	case SignOut:
		return State{}
	case Navigate:
		if a.To.valid() {
			s.View = a.To
		}
		return s
	case SignIn:
		if a.UserID != "" && a.UserID != s.UserID {
			return State{Authenticated: true, View: ViewDashboard, UserID: a.UserID}
		}
		return s
	default:
		return s
	}
}
