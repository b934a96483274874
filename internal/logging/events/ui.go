package events

import "github.com/atomicstack/mapping-example/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) MenuEnter(levelID, itemID, label, filter string) {
	logging.Trace("menu.enter", map[string]interface{}{
		"level":  levelID,
		"item":   itemID,
		"label":  label,
		"filter": filter,
	})
}

func (UITracer) MenuCursor(levelID string, cursor int) {
	logging.Trace("menu.cursor", map[string]interface{}{"level": levelID, "cursor": cursor})
}

func (UITracer) ButtonPress(card, text string, bound bool) {
	logging.Trace("card.button", map[string]interface{}{"card": card, "text": text, "bound": bound})
}

func (UITracer) PageShow(card, panel string) {
	logging.Trace("card.show", map[string]interface{}{"card": card, "panel": panel})
}

func (UITracer) Resize(width, height int, orientation string) {
	logging.Trace("window.resize", map[string]interface{}{
		"width":       width,
		"height":      height,
		"orientation": orientation,
	})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func traceFilter(event, levelID string, key string, value interface{}) {
	payload := map[string]interface{}{"level": levelID}
	if key != "" {
		payload[key] = value
	}
	logging.Trace("filter."+event, payload)
}

func (FilterTracer) Cleared(levelID string) { traceFilter("clear", levelID, "", nil) }

func (FilterTracer) Append(levelID, filter string) { traceFilter("append", levelID, "filter", filter) }

func (FilterTracer) Backspace(levelID, filter string) {
	traceFilter("backspace", levelID, "filter", filter)
}

func (FilterTracer) WordBackspace(levelID, filter string) {
	traceFilter("word-backspace", levelID, "filter", filter)
}

func (FilterTracer) Cursor(levelID string, pos int) { traceFilter("cursor", levelID, "cursor", pos) }

func (FilterTracer) CursorWord(levelID string, pos int) {
	traceFilter("cursor-word", levelID, "cursor", pos)
}

// traceCommand records one stage of a button press; id carries the press
// sequence number.
func traceCommand(stage, id, label string, extra map[string]interface{}) {
	payload := map[string]interface{}{"id": id, "label": label}
	for k, v := range extra {
		payload[k] = v
	}
	logging.Trace("command."+stage, payload)
}

func (CommandTracer) Queue(id, label string) { traceCommand("queue", id, label, nil) }

func (CommandTracer) Skip(id, label string) { traceCommand("skip", id, label, nil) }

func (CommandTracer) NoOp(id, label string) { traceCommand("noop", id, label, nil) }

func (CommandTracer) Result(id, label, msgType string) {
	traceCommand("result", id, label, map[string]interface{}{"msg": msgType})
}
