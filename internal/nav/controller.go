package nav

// MenuState is the open/closed state of the navigation menu.
type MenuState string

const (
	MenuClosed MenuState = "closed"
	MenuOpen   MenuState = "open"
)

// State is an immutable snapshot of the navigation controller.
type State struct {
	Path string    `json:"path,omitempty"`
	Menu MenuState `json:"menu,omitempty"`
}

// Open reports whether the menu is open.
func (s State) Open() bool { return s.Menu == MenuOpen }

// ScrollLock suppresses background scrolling while acquired.
type ScrollLock interface {
	Acquire()
	Release()
}

// LockFlag is a ScrollLock that only records whether it is held.
type LockFlag struct {
	locked bool
}

func (f *LockFlag) Acquire() { f.locked = true }
func (f *LockFlag) Release() { f.locked = false }

// Locked reports whether the lock is currently held.
func (f *LockFlag) Locked() bool { return f != nil && f.locked }

// Controller owns the current path and the menu state machine.
//
// The scroll lock is held exactly while the menu is open. Every transition out
// of open releases it, and Close releases it unconditionally.
type Controller struct {
	state    State
	lock     ScrollLock
	held     bool
	torndown bool
	nextID   int
	subs     []subscription
}

type subscription struct {
	id int
	fn func(State)
}

// NewController restores a controller from a snapshot. A nil lock is allowed.
func NewController(initial State, lock ScrollLock) *Controller {
	if initial.Menu != MenuOpen {
		initial.Menu = MenuClosed
	}
	c := &Controller{state: initial, lock: lock}
	if initial.Open() {
		c.acquire()
	}
	return c
}

// State returns the current snapshot.
func (c *Controller) State() State { return c.state }

// Path returns the current resolved path.
func (c *Controller) Path() string { return c.state.Path }

// MenuOpen reports whether the menu is open.
func (c *Controller) MenuOpen() bool { return c.state.Open() }

// ScrollLocked reports whether the controller holds the scroll lock.
func (c *Controller) ScrollLocked() bool { return c.held }

// Items renders the header navigation for the current path.
func (c *Controller) Items() []RenderedItem { return Build(c.state.Path) }

// Toggle flips the menu.
func (c *Controller) Toggle() {
	if c.state.Open() {
		c.transition(c.state.Path, MenuClosed)
		return
	}
	c.transition(c.state.Path, MenuOpen)
}

// Navigate records a route change, which always closes the menu.
func (c *Controller) Navigate(path string) {
	c.transition(path, MenuClosed)
}

// SelectEntry handles activation of a nav link; the menu closes.
func (c *Controller) SelectEntry() {
	c.transition(c.state.Path, MenuClosed)
}

// Dismiss closes the menu without navigating (backdrop click, Escape).
func (c *Controller) Dismiss() {
	c.transition(c.state.Path, MenuClosed)
}

// Close tears the controller down, releasing the scroll lock. Later
// transitions are ignored.
func (c *Controller) Close() {
	if c.torndown {
		return
	}
	c.release()
	c.torndown = true
	c.subs = nil
}

// Subscribe registers fn to receive every new snapshot. Subscribers are
// notified in the order they subscribed. The returned func removes the
// subscription.
func (c *Controller) Subscribe(fn func(State)) (unsubscribe func()) {
	if c.torndown || fn == nil {
		return func() {}
	}
	id := c.nextID
	c.nextID++
	c.subs = append(c.subs, subscription{id: id, fn: fn})
	return func() { c.unsubscribe(id) }
}

func (c *Controller) unsubscribe(id int) {
	for i, sub := range c.subs {
		if sub.id == id {
			c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
			return
		}
	}
}

func (c *Controller) transition(path string, menu MenuState) {
	if c.torndown {
		return
	}
	next := State{Path: path, Menu: menu}
	if next == c.state {
		return
	}
	c.state = next
	if next.Open() {
		c.acquire()
	} else {
		c.release()
	}
	for _, sub := range c.subs {
		sub.fn(next)
	}
}

func (c *Controller) acquire() {
	if c.held {
		return
	}
	if c.lock != nil {
		c.lock.Acquire()
	}
	c.held = true
}

func (c *Controller) release() {
	if !c.held {
		return
	}
	if c.lock != nil {
		c.lock.Release()
	}
	c.held = false
}
