package menu

import (
	"errors"

	"go.uber.org/multierr"

	"github.com/atomicstack/mapping-example/internal/logging"
	"github.com/atomicstack/mapping-example/internal/logging/events"
)

// Index maps menu titles to the cards built for them. It is read-only once
// Build returns.
type Index struct {
	titles   []string
	cards    map[string]*Card
	warnings error
}

// Build converts menu entries into cards. Handler paths are resolved against
// handlers; a path that cannot be resolved leaves its button without an
// action and is reported through Index.Warnings while the build continues.
// A repeated title or an unknown element kind fails the whole build.
func Build(entries []MenuEntry, handlers *Registry) (*Index, error) {
	idx := &Index{
		titles: make([]string, 0, len(entries)),
		cards:  make(map[string]*Card, len(entries)),
	}
	var warnings error
	for _, entry := range entries {
		if _, dup := idx.cards[entry.Title]; dup {
			return nil, &DuplicateMenuTitleError{Title: entry.Title}
		}
		card, problems, err := buildCard(entry, handlers)
		if err != nil {
			return nil, err
		}
		warnings = multierr.Append(warnings, multierr.Combine(problems...))
		idx.titles = append(idx.titles, entry.Title)
		idx.cards[entry.Title] = card
	}
	idx.warnings = warnings
	events.Menu.Built(len(idx.titles), len(multierr.Errors(warnings)))
	return idx, nil
}

func buildCard(entry MenuEntry, handlers *Registry) (*Card, []error, error) {
	card := &Card{Title: entry.Title, Elements: make([]Element, 0, len(entry.Elements))}
	var problems []error
	for _, spec := range entry.Elements {
		el := Element{Kind: spec.Kind, Title: spec.Title}
		switch spec.Kind {
		case KindPanel:
			el.ID = spec.ID
		case KindButton:
			el.Text = spec.Text
			el.Handler = spec.Handler
			if spec.Handler != "" {
				action, err := handlers.Resolve(spec.Handler)
				if err != nil {
					var resolveErr *HandlerResolutionError
					if errors.As(err, &resolveErr) {
						resolveErr.Entry = entry.Title
						events.Menu.Unresolved(entry.Title, resolveErr.Path, resolveErr.Segment)
					}
					logging.Error(err)
					problems = append(problems, err)
				} else {
					el.Action = action
				}
			}
		default:
			return nil, nil, &UnknownElementTypeError{Entry: entry.Title, Type: string(spec.Kind)}
		}
		card.Elements = append(card.Elements, el)
	}
	return card, problems, nil
}

// Titles returns the menu titles in definition order.
func (i *Index) Titles() []string {
	if i == nil {
		return nil
	}
	dup := make([]string, len(i.titles))
	copy(dup, i.titles)
	return dup
}

// Card looks up the card built for title.
func (i *Index) Card(title string) (*Card, bool) {
	if i == nil {
		return nil, false
	}
	card, ok := i.cards[title]
	return card, ok
}

// Len reports the number of entries.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.titles)
}

// Items lists the entries as root menu items.
func (i *Index) Items() []Item {
	return ItemsFromTitles(i.Titles())
}

// Warnings returns the recoverable problems met during Build.
func (i *Index) Warnings() []error {
	if i == nil {
		return nil
	}
	return multierr.Errors(i.warnings)
}
