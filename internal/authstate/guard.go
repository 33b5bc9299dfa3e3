package authstate

import (
	"sync"
	"time"

	"github.com/veramar/litoral/internal/domain"
)

// LoginRedirectDelay gives the "please sign in" toast time to render
// before the login redirect fires.
const LoginRedirectDelay = 500 * time.Millisecond

// Requirement declares what a page needs from the auth state.
type Requirement struct {
	// RequireAuth demands an authenticated, profile-complete user.
	RequireAuth bool
	// RequireAdmin demands admin access.
	RequireAdmin bool
	// RequireType demands a specific user type; zero value means any.
	RequireType domain.UserType
}

// Action is what the page should do after a guard evaluation.
type Action int

const (
	// ActionRender lets the page render normally.
	ActionRender Action = iota
	// ActionWait renders a neutral placeholder while loading.
	ActionWait
	// ActionRedirect schedules a navigation.
	ActionRedirect
)

// Decision is the explicit command a guard evaluation returns.
// Evaluation has no side effects; the caller applies the command.
type Decision struct {
	Action Action
	Target string
	Delay  time.Duration
}

// Routes names the navigation targets guards redirect to.
type Routes struct {
	Login string
	Home  string
}

// Evaluate is a pure function from (snapshot, requirement) to a
// decision. Re-evaluating with the same snapshot yields the same
// decision, so callers may run it on every render.
func Evaluate(snap Snapshot, req Requirement, routes Routes) Decision {
	if !req.RequireAuth && !req.RequireAdmin && req.RequireType == "" {
		return Decision{Action: ActionRender}
	}

	if snap.Loading() {
		return Decision{Action: ActionWait}
	}

	if !snap.IsAuthenticated() {
		return Decision{Action: ActionRedirect, Target: routes.Login, Delay: LoginRedirectDelay}
	}

	if req.RequireAdmin && !snap.IsAdmin() {
		return Decision{Action: ActionRedirect, Target: routes.Home}
	}

	if req.RequireType != "" && snap.User.UserType != req.RequireType && !snap.IsAdmin() {
		return Decision{Action: ActionRedirect, Target: routes.Home}
	}

	return Decision{Action: ActionRender}
}

// Redirector applies redirect decisions at most once per snapshot
// version, keeping guards idempotent under re-render.
type Redirector struct {
	navigate func(target string)
	after    func(d time.Duration, fn func())

	mu   sync.Mutex
	done map[uint64]bool
}

// NewRedirector creates a redirector that calls navigate when a
// scheduled redirect fires.
func NewRedirector(navigate func(target string)) *Redirector {
	return &Redirector{
		navigate: navigate,
		after: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
		done: make(map[uint64]bool),
	}
}

// Apply schedules the decision's redirect, if any. Repeated calls with
// the same snapshot version are no-ops. Returns true when a redirect
// was newly scheduled.
func (r *Redirector) Apply(snap Snapshot, dec Decision) bool {
	if dec.Action != ActionRedirect {
		return false
	}

	r.mu.Lock()
	if r.done[snap.Version] {
		r.mu.Unlock()
		return false
	}
	r.done[snap.Version] = true
	r.mu.Unlock()

	if dec.Delay <= 0 {
		r.navigate(dec.Target)
		return true
	}
	r.after(dec.Delay, func() {
		r.navigate(dec.Target)
	})
	return true
}
