package app

import "context"

// Command pairs a local state change with the action that undoes it.
type Command struct {
	Forward    func()
	Compensate func()
}

// RunOptimistic applies Forward, calls remote, and applies Compensate if remote fails.
// The remote result is authoritative; its error is returned unchanged.
func RunOptimistic(ctx context.Context, c Command, remote func(context.Context) error) error {
	if c.Forward != nil {
		c.Forward()
	}
	if err := remote(ctx); err != nil {
		if c.Compensate != nil {
			c.Compensate()
		}
		return err
	}
	return nil
}

// FavoriteToggle builds the command a client applies to its local favorite set before the
// server confirms. The returned bool is the state being requested.
func FavoriteToggle(set map[string]bool, hotelID string) (Command, bool) {
	prev, had := set[hotelID]
	next := !prev
	return Command{
		Forward: func() { set[hotelID] = next },
		Compensate: func() {
			if had {
				set[hotelID] = prev
				return
			}
			delete(set, hotelID)
		},
	}, next
}
