package ports

import "context"

// Navigator performs a hard navigation of the current page to target,
// discarding whatever the page was about to render.
type Navigator interface {
	Navigate(ctx context.Context, target string)
}
