package reality

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/jwebster45206/exploration/internal/logger"
	"github.com/jwebster45206/exploration/pkg/state"
	"github.com/jwebster45206/exploration/pkg/world"
)

// ItemPrompt is shown while the player picks an item to use.
const ItemPrompt = "Which Item?   "

// ErrReplayFailed means the recorded path no longer resolves against the
// event's tree. The turn loop cannot continue from it.
var ErrReplayFailed = errors.New("failed to replay event path")

// Reality is the unit of play: one read-only World and the one State that
// walks it.
type Reality struct {
	World *world.World
	State *state.State

	in          Prompter
	out         io.Writer
	logger      *slog.Logger
	leaveAtRoot bool
}

// Option configures a Reality.
type Option func(*Reality)

// WithLogger sets the logger used for turn diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reality) {
		r.logger = logger
	}
}

// WithLeaveAtRoot makes "q" at the root of a tree leave the event instead of
// doing nothing.
func WithLeaveAtRoot(leave bool) Option {
	return func(r *Reality) {
		r.leaveAtRoot = leave
	}
}

// New joins a world and a session. Unless the session is already inside an
// event, the event on the starting tile, if any, is cached right away.
func New(w *world.World, st *state.State, in Prompter, out io.Writer, opts ...Option) *Reality {
	r := &Reality{
		World:  w,
		State:  st,
		in:     in,
		out:    out,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logger.WithSession(r.logger, st.ID.String())
	if !st.InEvent || st.Event == nil {
		st.Arrive(w.EventAt(st.Pos))
	}
	return r
}

// Travel applies a free-roam command. Movement clamps to the grid, caches the
// event on the new tile and drops any traversal. "f" interacts in place.
func (r *Reality) Travel(input string) {
	cmd := state.ParseTravel(input)
	switch cmd {
	case state.CmdNone:
		return
	case state.CmdInteract:
		r.Encounter()
		return
	}

	dx, dy := cmd.Delta()
	r.State.Pos = world.Pos{X: r.State.Pos.X + dx, Y: r.State.Pos.Y + dy}.Bound(world.MaxCoord)
	r.State.Arrive(r.World.EventAt(r.State.Pos))
	r.logger.Debug("Travelled", "command", cmd, "pos", r.State.Pos, "event", r.State.Event != nil)
}

// Encounter enters the event on the current tile, if there is one.
func (r *Reality) Encounter() {
	ev := r.World.EventAt(r.State.Pos)
	if ev == nil {
		return
	}
	r.State.Event = ev
	r.State.Enter()
	r.logger.Debug("Entered event", "pos", r.State.Pos)
}

// ActionFor turns in-event input into an action. "e" asks the player to pick
// an item; a bad pick yields false and the turn is dropped.
func (r *Reality) ActionFor(input string) (world.Action, bool) {
	if !state.IsChooseItem(input) {
		return world.Simple(input), true
	}
	it, ok := r.ChooseItem()
	if !ok {
		return world.Action{}, false
	}
	return world.UseItem(it.ID), true
}

// ChooseItem lists the inventory by index and reads the player's pick.
func (r *Reality) ChooseItem() (world.Item, bool) {
	for i, it := range r.State.Inventory {
		fmt.Fprintf(r.out, "%d. %s\n", i, it.Name)
	}
	idx, err := strconv.Atoi(r.in.Prompt(ItemPrompt))
	if err != nil || idx < 0 || idx >= len(r.State.Inventory) {
		r.logger.Debug("Ignored item choice", "error", err, "index", idx)
		return world.Item{}, false
	}
	return r.State.Inventory[idx], true
}

// Progress applies an action inside the current event. "q" steps back;
// an action without a matching branch does nothing.
func (r *Reality) Progress(action world.Action) error {
	if !r.State.InEvent {
		return nil
	}
	if action.Kind == world.ActionSimple && state.IsBack(action.Command) {
		return r.Back()
	}

	next, ok := r.State.Event.Tree.Child(r.State.Node, action)
	if !ok {
		r.logger.Debug("No branch for action", "action", action, "node", r.State.Node)
		return nil
	}
	r.State.Descend(action, next)
	r.logger.Debug("Descended", "action", action, "node", next, "depth", len(r.State.Path))
	return nil
}

// Back pops the last action and recomputes the current node by replaying the
// remaining path from the event's root.
func (r *Reality) Back() error {
	if _, ok := r.State.Retreat(); !ok {
		if r.leaveAtRoot {
			r.State.Leave()
		}
		return nil
	}
	node, err := r.State.Event.Tree.Resolve(r.State.Path)
	if err != nil {
		r.logger.Error("Failed to replay event path", "path", r.State.Path, "error", err)
		return fmt.Errorf("%w: %w", ErrReplayFailed, err)
	}
	r.State.Node = node
	return nil
}

// Render writes the current view: the node text inside an event, otherwise
// the position and the preview of any event here.
func (r *Reality) Render(w io.Writer) {
	if r.State.InEvent {
		n, _ := r.State.Event.Tree.Node(r.State.Node)
		fmt.Fprintln(w, n.Text)
		return
	}
	fmt.Fprintf(w, "You are at %s\n", r.State.Pos)
	if r.State.Event != nil {
		fmt.Fprintln(w, r.State.Event.Preview)
	}
}

// Turn applies one line of input to the state.
func (r *Reality) Turn(input string) error {
	if !r.State.InEvent {
		if state.IsInventory(input) {
			fmt.Fprintln(r.out, r.State.DescribeInventory())
			return nil
		}
		r.Travel(input)
		return nil
	}

	action, ok := r.ActionFor(input)
	if !ok {
		return nil
	}
	return r.Progress(action)
}

// Run renders, reads and applies turns until ctx is done or a turn fails.
func (r *Reality) Run(ctx context.Context) error {
	r.logger.Info("Starting turn loop", "pos", r.State.Pos, "events", r.World.Len())
	for {
		if err := ctx.Err(); err != nil {
			r.logger.Info("Turn loop stopped", "reason", err)
			return nil
		}
		r.Render(r.out)
		if err := r.Turn(r.in.Prompt("")); err != nil {
			return err
		}
	}
}

// Snapshot returns a deep copy of the session for display elsewhere.
func (r *Reality) Snapshot() *state.State {
	return r.State.Clone()
}
