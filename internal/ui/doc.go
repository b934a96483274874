// Package ui contains the Bubble Tea program that renders the menu, its
// cards and the map.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. While the
//     location form is open it receives key presses; everything else is
//     routed through a typed handler registry keyed by message type.
//   - Key handling (navigation.go) moves the cursor, edits the filter
//     (input.go), selects menu titles and presses card buttons. Titles go to
//     the navigation controller; buttons run their bound action through the
//     command bus in internal/ui/command.
//   - The navigation controller reports every transition back to the model.
//     Once the triggering message has been handled the newly active card gets
//     its page-show: cards hosting the map panel initialise the map widget
//     and request placemarks.
//
// State ownership:
//   - Cursor, filter and viewport state for the root title list and for each
//     card's buttons lives in internal/ui/state.Level.
//   - Active card and back history live in internal/nav; the model only asks
//     it what to draw.
//   - Fetched placemarks land in internal/state through the dispatcher before
//     they are placed on the map.
//
// Backend interactions:
//   - With a running backend.Fetcher, requests are queued on the worker and
//     results arrive on its event channel, which the model keeps waiting on.
//     Without one, each request runs as a one-shot command.
package ui
