package menu

import "fmt"

// HandlerResolutionError reports a button handler path that does not name a
// registered action. The element it belongs to is built without an action.
type HandlerResolutionError struct {
	Entry       string
	Path        string
	Segment     string
	NotCallable bool
}

func (e *HandlerResolutionError) Error() string {
	where := ""
	if e.Entry != "" {
		where = fmt.Sprintf(" in %q", e.Entry)
	}
	if e.NotCallable {
		return fmt.Sprintf("handler %q%s: %q is a namespace, not an action", e.Path, where, e.Segment)
	}
	return fmt.Sprintf("handler %q%s: %q not defined", e.Path, where, e.Segment)
}

// DuplicateMenuTitleError fails a build whose entries share a title.
type DuplicateMenuTitleError struct {
	Title string
}

func (e *DuplicateMenuTitleError) Error() string {
	return fmt.Sprintf("duplicate menu title %q", e.Title)
}

// UnknownElementTypeError reports a ui_type other than panel or button.
type UnknownElementTypeError struct {
	Entry string
	Type  string
}

func (e *UnknownElementTypeError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("unknown ui_type %q in %q", e.Type, e.Entry)
	}
	return fmt.Sprintf("unknown ui_type %q", e.Type)
}
