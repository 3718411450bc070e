// Package github turns submitted branches into review requests.
//
// Notifiers are fire-and-forget: a failed notification is logged as a
// warning and never fails the submit that triggered it.
package github

import (
	"context"

	"diamond.dev/diamond/internal/git"
	"diamond.dev/diamond/internal/tui"
)

// ReviewRequest describes a freshly pushed branch awaiting review against its parent
type ReviewRequest struct {
	Remote git.Remote
	Parent string
	Branch string
	// URL is the web link that opens a review of Branch against Parent
	URL string
}

// Notifier receives a review request for every submitted branch
type Notifier interface {
	Notify(ctx context.Context, req ReviewRequest)
}

// LinkNotifier prints the review link for each branch
type LinkNotifier struct {
	splog *tui.Splog
}

// NewLinkNotifier creates a notifier that prints "[branch] -> url"
func NewLinkNotifier(splog *tui.Splog) *LinkNotifier {
	return &LinkNotifier{splog: splog}
}

func (n *LinkNotifier) Notify(_ context.Context, req ReviewRequest) {
	n.splog.Info("[%s] -> %s", req.Branch, tui.ColorURL(req.URL))
}

// MultiNotifier fans a request out to several notifiers in order
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, req ReviewRequest) {
	for _, n := range m {
		n.Notify(ctx, req)
	}
}
