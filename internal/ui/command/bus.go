package command

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/mapping-example/internal/logging/events"
	"github.com/atomicstack/mapping-example/internal/menu"
)

// Request describes one button press routed to its bound action.
type Request struct {
	// ID is the dotted handler path, e.g. "map.refresh".
	ID      string
	Label   string
	Handler menu.Action
	Item    menu.Item
}

// Bus turns button presses into Bubble Tea commands. Every press gets a
// sequence number so repeated presses of one button stay apart in traces.
type Bus struct {
	seq uint64
}

func New() *Bus {
	return &Bus{}
}

// Seq returns the number of requests executed so far.
func (b *Bus) Seq() uint64 {
	return b.seq
}

// Execute binds the action to ctx now and runs it when Bubble Tea invokes
// the returned command. Requests without a handler resolve to a nil message.
func (b *Bus) Execute(ctx menu.Context, req Request) tea.Cmd {
	b.seq++
	traceID := req.ID + "#" + strconv.FormatUint(b.seq, 10)
	events.Command.Queue(traceID, req.Label)
	if req.Handler == nil {
		return func() tea.Msg {
			events.Command.Skip(traceID, req.Label)
			return nil
		}
	}
	return func() tea.Msg {
		run := req.Handler(ctx, req.Item)
		if run == nil {
			events.Command.NoOp(traceID, req.Label)
			return nil
		}
		msg := run()
		events.Command.Result(traceID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
