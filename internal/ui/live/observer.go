package live

import (
	"io"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"inferoute/pkg/dispatch"
	"inferoute/pkg/schedule"
)

// Controller runs the live UI and implements schedule.Observer.
type Controller struct {
	events    chan Event
	program   *tea.Program
	done      chan struct{}
	closeOnce sync.Once
}

// Start launches a live UI controller that writes to stdout.
func Start(stdout io.Writer, opts Options) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	events := make(chan Event, 256)
	model := NewModel(events, opts)
	program := tea.NewProgram(model, tea.WithOutput(stdout), tea.WithAltScreen())
	controller := &Controller{
		events:  events,
		program: program,
		done:    make(chan struct{}),
	}
	go func() {
		_ = program.Start()
		close(controller.done)
	}()
	return controller
}

// Close signals the UI to stop.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.closeOnce.Do(func() {
		close(c.events)
	})
}

// Wait blocks until the UI has exited.
func (c *Controller) Wait() {
	if c == nil {
		return
	}
	<-c.done
}

// OnRunStart forwards run start events to the UI.
func (c *Controller) OnRunStart(at time.Time, pending int) {
	c.send(Event{Kind: EventRunStart, At: at, Pending: pending})
}

// OnAdmit forwards admissions to the UI.
func (c *Controller) OnAdmit(at time.Time, route string, req dispatch.Request, header dispatch.Header) {
	c.send(Event{Kind: EventAdmit, At: at, Route: route, Request: req, Header: header})
}

// OnReject forwards limit rejections to the UI.
func (c *Controller) OnReject(at time.Time, route string, req dispatch.Request, err error) {
	c.send(Event{Kind: EventReject, At: at, Route: route, Request: req, Limit: dispatch.KindOf(err)})
}

// OnWait forwards refill waits to the UI.
func (c *Controller) OnWait(at time.Time, d time.Duration) {
	c.send(Event{Kind: EventWait, At: at, Wait: d})
}

// OnRunEnd forwards run completion to the UI and closes it.
func (c *Controller) OnRunEnd(at time.Time, report schedule.Report) {
	c.send(Event{Kind: EventRunEnd, At: at, Report: report})
	c.Close()
}

// send enqueues an event without blocking the scheduler.
func (c *Controller) send(event Event) {
	if c == nil {
		return
	}
	select {
	case c.events <- event:
	default:
	}
}
