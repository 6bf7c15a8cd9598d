package client

import "sync"

// Page is a navigation target of the client.
type Page string

const (
	// SignInPage is the sign-in entry point.
	SignInPage Page = "signin"
	// LandingPage is the authenticated landing page.
	LandingPage Page = "landing"
)

// Navigator performs the "navigate away" side effect. Implementations must
// tolerate being called while a navigation is already pending.
type Navigator interface {
	Navigate(page Page)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(page Page)

func (f NavigatorFunc) Navigate(page Page) { f(page) }

// PendingNavigator records the requested page until the UI consumes it.
// While a navigation is pending, further requests are ignored, except that
// SignInPage replaces any other pending page. Concurrent failures collapse
// into one navigation and an expired session always ends at sign-in.
type PendingNavigator struct {
	mu      sync.Mutex
	page    Page
	pending bool
}

func (n *PendingNavigator) Navigate(page Page) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.pending && (n.page == SignInPage || page != SignInPage) {
		return
	}
	n.page = page
	n.pending = true
}

// Take returns the pending page and resets the latch.
func (n *PendingNavigator) Take() (Page, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.pending {
		return "", false
	}
	page := n.page
	n.page, n.pending = "", false
	return page, true
}
