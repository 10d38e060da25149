// Package dispatch owns the recipient registry, the focus pointer and the action
// queue, and delivers every queued action to its recipient.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/mmed-hajnasr/do-me/internal/action"
	"github.com/mmed-hajnasr/do-me/internal/keymap"
)

type Options struct {
	Keymap *keymap.Keymap
	Logger *log.Logger
	// Focus is the recipient focused after Init. Defaults to Workspaces.
	Focus action.ComponentID
}

// Dispatcher is the single mutator of application state. It is not safe for
// concurrent use; only Send may be called from other goroutines.
type Dispatcher struct {
	queue      *action.Queue
	components map[action.ComponentID]Component
	order      []action.ComponentID

	focused    action.ComponentID
	initial    action.ComponentID
	sortReturn action.ComponentID

	matcher *keymap.Matcher
	insert  bool

	quit    bool
	suspend bool
	clear   bool
	width   int
	height  int
	frames  int

	log *log.Logger
}

func New(opts Options) *Dispatcher {
	if opts.Keymap == nil {
		opts.Keymap = keymap.Default()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Focus == action.None {
		opts.Focus = action.Workspaces
	}
	return &Dispatcher{
		queue:      action.NewQueue(),
		components: map[action.ComponentID]Component{},
		initial:    opts.Focus,
		matcher:    keymap.NewMatcher(opts.Keymap),
		log:        opts.Logger,
	}
}

// Register adds c under id and hands it the queue.
func (d *Dispatcher) Register(id action.ComponentID, c Component) {
	if !id.Concrete() {
		panic(fmt.Sprintf("dispatch: cannot register virtual target %s", id))
	}
	if _, ok := d.components[id]; !ok {
		d.order = append(d.order, id)
		sort.Slice(d.order, func(i, j int) bool { return d.order[i] < d.order[j] })
	}
	d.components[id] = c
	c.Register(d.queue)
}

// Init initializes every recipient and focuses the initial one.
func (d *Dispatcher) Init() error {
	for _, id := range d.order {
		if err := d.components[id].Init(); err != nil {
			return fmt.Errorf("init %s: %w", id, err)
		}
	}
	d.setFocus(d.initial)
	return nil
}

// Send enqueues a; it is safe from any goroutine.
func (d *Dispatcher) Send(a action.Action) { d.queue.Send(a) }

// HandleKey turns a key press into queued actions. In insert mode the key goes to
// the focused recipient untouched.
func (d *Dispatcher) HandleKey(msg tea.KeyMsg) {
	if d.insert {
		d.queue.Send(action.SendKey{Key: msg})
		return
	}
	if a, ok := d.matcher.Key(d.Mode(), msg.String()); ok {
		d.queue.Send(a)
	}
}

// Drain dispatches queued actions, including those enqueued while draining, until
// the queue is empty. The first fatal error stops the drain and is returned.
func (d *Dispatcher) Drain(ctx context.Context) error {
	for {
		a, ok := d.queue.Pop()
		if !ok {
			return nil
		}
		if err := d.Dispatch(ctx, a); err != nil {
			return err
		}
	}
}

// Dispatch delivers one action to its recipient.
func (d *Dispatcher) Dispatch(ctx context.Context, a action.Action) error {
	target := action.Route(a)
	if !action.Quiet(a) {
		d.log.Debug("action", "name", action.Name(a), "target", target)
	}

	switch target {
	case action.All:
		d.apply(a)
		for _, id := range d.order {
			if err := d.components[id].Update(ctx, a); err != nil {
				return fmt.Errorf("%s: %s: %w", id, action.Name(a), err)
			}
		}
		return nil
	case action.Focused:
		c, ok := d.components[d.focused]
		if !ok {
			d.log.Error("no focused recipient", "action", action.Name(a), "focused", d.focused)
			return nil
		}
		if err := c.Update(ctx, a); err != nil {
			return fmt.Errorf("%s: %s: %w", d.focused, action.Name(a), err)
		}
		return nil
	case action.None:
		d.log.Error("unroutable action", "action", fmt.Sprintf("%#v", a))
		return nil
	default:
		c, ok := d.components[target]
		if !ok {
			d.log.Error("recipient not registered", "action", action.Name(a), "target", target)
			return nil
		}
		if err := c.Update(ctx, a); err != nil {
			return fmt.Errorf("%s: %s: %w", target, action.Name(a), err)
		}
		return nil
	}
}

// apply mutates dispatcher-owned state for broadcast actions, before they are delivered.
func (d *Dispatcher) apply(a action.Action) {
	switch a := a.(type) {
	case action.Tick:
		if d.matcher.Tick() {
			d.log.Debug("key sequence timed out")
		}
	case action.Render:
		d.frames++
	case action.Resize:
		d.width, d.height = a.Width, a.Height
	case action.Quit:
		d.quit = true
	case action.Suspend:
		d.suspend = true
	case action.Resume:
		d.suspend = false
	case action.ClearScreen:
		d.clear = true
	case action.EnterInsertMode:
		d.insert = true
		d.matcher.Reset()
	case action.LeaveInsertMode:
		d.insert = false
		d.matcher.Reset()
	case action.FocusOnTasks:
		d.setFocus(action.Tasks)
	case action.FocusOnWorkspaces:
		d.setFocus(action.Workspaces)
	case action.OpenSortMenu:
		if d.focused != action.Tasks && d.focused != action.Workspaces {
			return
		}
		d.sortReturn = d.focused
		d.queue.Send(action.SetupSortMenu{Target: d.focused})
		d.setFocus(action.SortMenu)
	case action.ExitSortMenu:
		ret := a.Return
		if !ret.Concrete() {
			ret = d.sortReturn
		}
		d.setFocus(ret)
	}
}

func (d *Dispatcher) setFocus(id action.ComponentID) {
	next, ok := d.components[id]
	if !ok {
		d.log.Error("cannot focus unregistered recipient", "target", id)
		return
	}
	if id == d.focused {
		next.Focus(true)
		return
	}
	if prev, ok := d.components[d.focused]; ok {
		prev.Focus(false)
	}
	next.Focus(true)
	d.focused = id
}

// Mode is the keymap mode implied by the current focus and insert flag.
func (d *Dispatcher) Mode() keymap.Mode {
	switch {
	case d.insert:
		return keymap.Insert
	case d.focused == action.SortMenu:
		return keymap.Menu
	default:
		return keymap.Navigation
	}
}

func (d *Dispatcher) Focused() action.ComponentID  { return d.focused }
func (d *Dispatcher) InsertMode() bool             { return d.insert }
func (d *Dispatcher) ShouldQuit() bool             { return d.quit }
func (d *Dispatcher) ShouldSuspend() bool          { return d.suspend }
func (d *Dispatcher) Size() (width, height int)    { return d.width, d.height }
func (d *Dispatcher) Frames() int                  { return d.frames }
func (d *Dispatcher) PendingKeys() keymap.Sequence { return d.matcher.Pending() }
func (d *Dispatcher) Keymap() *keymap.Keymap       { return d.matcher.Keymap() }

// TakeClear reports and resets a pending clear-screen request.
func (d *Dispatcher) TakeClear() bool {
	c := d.clear
	d.clear = false
	return c
}
