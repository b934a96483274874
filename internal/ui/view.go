package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/mapping-example/internal/logging/events"
	"github.com/atomicstack/mapping-example/internal/menu"
)

const (
	inlineMapMinRows     = 3
	inlineMapMaxRows     = 14
	inlineMapDefaultCols = 60
	footerText           = "↑/↓ move  enter select  esc back  ctrl+c quit"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.mode == ModeLocationForm && m.locationForm != nil {
		return m.viewLocationFormWithHeader(renderLines([]styledLine{m.headerLine()}))
	}
	if m.hasSideMap() {
		return m.viewSideBySide()
	}
	return m.viewVertical()
}

// viewVertical is the single-column layout. A map panel renders inline at
// its position among the card elements.
func (m *Model) viewVertical() string {
	lines := make([]styledLine, 0, 16)
	lines = append(lines, m.headerLine())
	lines = append(lines, m.bodyLines(m.width, true)...)
	lines = append(lines, m.trailerLines()...)
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)
	lines = append(lines, m.bottomBar()...)
	return renderLines(lines)
}

// viewSideBySide renders the card on the left and the map in a bordered
// panel on the right. Used in landscape when the card hosts the map.
func (m *Model) viewSideBySide() string {
	menuW := m.menuColumnWidth()
	mapW := m.mapPanelWidth()
	const bottomBarRows = 2

	contentLines := make([]styledLine, 0, 16)
	contentLines = append(contentLines, m.headerLine())
	contentLines = append(contentLines, m.bodyLines(menuW, false)...)
	contentLines = append(contentLines, m.trailerLines()...)

	panelH := m.height - bottomBarRows
	if panelH < 1 {
		panelH = 1
	}
	if len(contentLines) > panelH {
		contentLines = contentLines[:panelH]
	}
	for len(contentLines) < panelH {
		contentLines = append(contentLines, styledLine{})
	}
	contentLines = applyWidth(contentLines, menuW)

	// Pad every row to exactly menuW columns so the map panel stays flush
	// right regardless of styling or cursor blink state.
	leftRows := strings.Split(renderLines(contentLines), "\n")
	for i, row := range leftRows {
		w := lipgloss.Width(row)
		if w > menuW {
			leftRows[i] = truncate.StringWithTail(row, uint(menuW-1), "…")
		} else if w < menuW {
			leftRows[i] = row + strings.Repeat(" ", menuW-w)
		}
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(leftRows, "\n"), m.renderMapPanel(mapW, panelH))
	return top + "\n" + renderLines(m.bottomBar())
}

// bodyLines renders the root title list or the active card.
func (m *Model) bodyLines(width int, inlineMap bool) []styledLine {
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	m.syncViewport(current)
	if current.IsRoot() {
		return m.rootLines(current, width)
	}
	return m.cardLines(current, width, inlineMap)
}

func (m *Model) rootLines(current *level, width int) []styledLine {
	if len(current.Items) == 0 {
		return []styledLine{{text: emptyListText(current), style: styles.Info}}
	}
	start := 0
	displayItems := current.Items
	if maxItems := m.maxVisibleItems(); maxItems > 0 && len(displayItems) > maxItems {
		start = current.ViewportOffset
		if start < 0 {
			start = 0
		}
		if start+maxItems > len(displayItems) {
			start = max(0, len(displayItems)-maxItems)
			current.ViewportOffset = start
		}
		displayItems = displayItems[start : start+maxItems]
	}
	lines := make([]styledLine, 0, len(displayItems))
	for i, item := range displayItems {
		lines = append(lines, m.buildItemLine(item.Label, start+i, current, width, true))
	}
	return lines
}

// cardLines renders card elements in definition order. Buttons hidden by the
// filter are skipped; panels always render.
func (m *Model) cardLines(current *level, width int, inlineMap bool) []styledLine {
	card := current.Card
	lines := make([]styledLine, 0, len(card.Elements))
	for i, el := range card.Elements {
		switch el.Kind {
		case menu.KindPanel:
			if m.isMapPanel(el) {
				lines = append(lines, styledLine{text: m.mapTitle(el), style: styles.PanelTitle})
				if inlineMap {
					lines = append(lines, m.inlineMapLines(width, m.inlineMapRows(card))...)
				}
				continue
			}
			lines = append(lines, styledLine{text: panelLabel(el), style: styles.PanelBody})
		case menu.KindButton:
			idx := current.IndexOf(strconv.Itoa(i))
			if idx < 0 {
				continue
			}
			lines = append(lines, m.buildItemLine(el.Label(), idx, current, width, el.Bound()))
		}
	}
	if len(current.Items) == 0 && current.Filter != "" {
		lines = append(lines, styledLine{text: emptyListText(current), style: styles.Info})
	}
	return lines
}

func emptyListText(current *level) string {
	if current.Filter != "" {
		return fmt.Sprintf("No matches for %q", current.Filter)
	}
	return "(no entries)"
}

func panelLabel(el menu.Element) string {
	switch {
	case el.Title != "":
		return "▭ " + el.Title
	case el.Text != "":
		return "▭ " + el.Text
	case el.ID != "":
		return "▭ " + el.ID
	}
	return "▭"
}

// trailerLines are the info message and footer shown under the body.
func (m *Model) trailerLines() []styledLine {
	lines := []styledLine{}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{}, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{}, styledLine{text: footerText, style: styles.Footer})
	}
	return lines
}

// bottomBar is the status line and filter prompt, always full width.
func (m *Model) bottomBar() []styledLine {
	var status styledLine
	if m.errMsg != "" {
		status = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	return applyWidth([]styledLine{status, {text: m.filterPrompt()}}, m.width)
}

// buildItemLine constructs the line for one selectable item. width pads the
// text so the selected item's background spans the column.
func (m *Model) buildItemLine(label string, idx int, current *level, width int, bound bool) styledLine {
	lineStyle := styles.Item
	if !bound {
		lineStyle = styles.InertItem
	}
	indicatorStyle := styles.ItemIndicator
	if idx == current.Cursor {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := "▌ " + label
	if width > 0 {
		if pad := width - len([]rune(fullText)); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

// menuHeader is the plain header text: the back indicator when history is
// non-empty, then the breadcrumb trail.
func (m *Model) menuHeader() string {
	trail := strings.Join(m.headerSegments(), menuHeaderSeparator)
	if m.app.Nav.IsBackAvailable() {
		return backIndicator + "  " + trail
	}
	return trail
}

func (m *Model) headerSegments() []string {
	crumbs := m.app.Nav.Breadcrumbs()
	if len(crumbs) == 0 {
		return []string{defaultRootTitle}
	}
	return crumbs
}

func (m *Model) headerLine() styledLine {
	line := styledLine{text: m.menuHeader(), style: styles.Header}
	if m.app.Nav.IsBackAvailable() {
		line.prefixStyle = styles.Back
		line.highlightFrom = len([]rune(backIndicator))
	}
	return line
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.orientation = orientationFor(m.width, m.height)
	events.UI.Resize(m.width, m.height, m.orientation)
	m.syncViewport(m.currentLevel())
	return nil
}

// Orientation reports the layout chosen for the current window size.
func (m *Model) Orientation() string {
	return m.orientation
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 3 // header + status line + filter prompt
	if m.currentInfo() != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.forceClearInfo()
	}
	return m.infoMsg
}
