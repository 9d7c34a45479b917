package navigation

import "eventease/internal/domain"

// Screen is the closed set of application screens.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenSignup
	ScreenEvents
	ScreenAddEvent
	ScreenEditEvent
	ScreenEventDetail
	ScreenCalendar
	ScreenLiked
)

func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "login"
	case ScreenSignup:
		return "signup"
	case ScreenEvents:
		return "events"
	case ScreenAddEvent:
		return "addEvent"
	case ScreenEditEvent:
		return "editEvent"
	case ScreenEventDetail:
		return "eventDetail"
	case ScreenCalendar:
		return "calendar"
	case ScreenLiked:
		return "liked"
	default:
		return "unknown"
	}
}

// Tab is the bottom tab a screen highlights.
type Tab int

const (
	TabEvents Tab = iota
	TabCalendar
	TabAdd
	TabLiked
)

// Tab maps a screen to its bottom tab.
func (s Screen) Tab() Tab {
	switch s {
	case ScreenCalendar:
		return TabCalendar
	case ScreenAddEvent, ScreenEditEvent:
		return TabAdd
	case ScreenLiked:
		return TabLiked
	default:
		return TabEvents
	}
}

// ShowsTabs reports whether the tab bar is visible on this screen.
func (s Screen) ShowsTabs() bool {
	switch s {
	case ScreenEvents, ScreenCalendar, ScreenAddEvent, ScreenEditEvent, ScreenLiked, ScreenEventDetail:
		return true
	default:
		return false
	}
}

// Navigator is the per-session screen state machine: current and previous
// screen, the selected event payload, and a transition-in-progress flag
// that blocks re-entrant navigation while an exit animation plays.
type Navigator struct {
	current       Screen
	previous      Screen
	hasPrevious   bool
	selected      *domain.Event
	transitioning bool
}

// NewNavigator starts on the events screen.
func NewNavigator() *Navigator {
	return &Navigator{current: ScreenEvents}
}

// Current returns the active screen.
func (n *Navigator) Current() Screen { return n.current }

// Previous returns the remembered screen, if any.
func (n *Navigator) Previous() (Screen, bool) { return n.previous, n.hasPrevious }

// SelectedEvent returns the event carried by detail/edit screens.
func (n *Navigator) SelectedEvent() *domain.Event { return n.selected }

// IsTransitioning reports whether a back transition is mid-flight.
func (n *Navigator) IsTransitioning() bool { return n.transitioning }

// NavigateToDetail opens the detail screen for an event, remembering
// where we came from.
func (n *Navigator) NavigateToDetail(event domain.Event) {
	n.previous = n.current
	n.hasPrevious = true
	n.selected = &event
	n.current = ScreenEventDetail
}

// NavigateToEdit opens the edit screen for an event, remembering where we
// came from.
func (n *Navigator) NavigateToEdit(event domain.Event) {
	n.previous = n.current
	n.hasPrevious = true
	n.selected = &event
	n.current = ScreenEditEvent
}

// NavigateTo jumps directly to a screen. Ignored while a transition is in
// progress.
func (n *Navigator) NavigateTo(screen Screen) {
	if n.transitioning {
		return
	}
	n.current = screen
}

// Back starts a back transition. It is only legal when a previous screen
// exists and no transition is already running; otherwise it returns
// (nil, false). On success it marks the navigator transitioning, invokes
// onStart (animation kickoff), and returns the completion func the caller
// must invoke once the exit animation finished. Completion restores the
// previous screen, clears the selected event when leaving detail/edit,
// and ends the transition.
func (n *Navigator) Back(onStart func()) (complete func(), ok bool) {
	if !n.hasPrevious || n.transitioning {
		return nil, false
	}
	n.transitioning = true
	if onStart != nil {
		onStart()
	}
	leaving := n.current
	return func() {
		n.current = n.previous
		n.hasPrevious = false
		if leaving == ScreenEventDetail || leaving == ScreenEditEvent {
			n.selected = nil
		}
		n.transitioning = false
	}, true
}

// LoginSucceeded routes to the events screen after authentication.
func (n *Navigator) LoginSucceeded() { n.current = ScreenEvents }

// SignupSucceeded routes to the events screen after registration.
func (n *Navigator) SignupSucceeded() { n.current = ScreenEvents }
