package events

import "github.com/atomicstack/mapping-example/internal/logging"

type NavTracer struct{}

type MenuTracer struct{}

var (
	Nav  = NavTracer{}
	Menu = MenuTracer{}
)

func (NavTracer) Select(title string, depth int) {
	logging.Trace("nav.select", map[string]interface{}{"title": title, "depth": depth})
}

func (NavTracer) UnknownTitle(title string) {
	logging.Trace("nav.unknown-title", map[string]interface{}{"title": title})
}

func (NavTracer) Back(active string, depth int) {
	logging.Trace("nav.back", map[string]interface{}{"active": active, "depth": depth})
}

func (NavTracer) EmptyHistory() {
	logging.Trace("nav.empty-history", nil)
}

func (MenuTracer) Built(entries, warnings int) {
	logging.Trace("menu.built", map[string]interface{}{"entries": entries, "warnings": warnings})
}

func (MenuTracer) Unresolved(entry, path, segment string) {
	logging.Trace("menu.unresolved-handler", map[string]interface{}{
		"entry":   entry,
		"path":    path,
		"segment": segment,
	})
}
