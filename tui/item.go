// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/aceplay/aceplay/icon"
	"github.com/aceplay/aceplay/key"
	"github.com/aceplay/aceplay/listing"
	"github.com/aceplay/aceplay/nav"
	"github.com/aceplay/aceplay/status"
	"github.com/aceplay/aceplay/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
)

// listItem implements the list.Item interface for one catalog row.
type listItem struct {
	row listing.Row
	// index is the row position in the listing, unaffected by list filtering.
	index int
	// base is the server the row's link points at.
	base   string
	marked bool
}

func newItems(rows []listing.Row, base, selection string) []*listItem {
	items := make([]*listItem, len(rows))
	for i, r := range rows {
		items[i] = &listItem{
			row:    r,
			index:  i,
			base:   base,
			marked: r.ID == selection,
		}
	}
	return items
}

func (t *listItem) getMark() string {
	return lipgloss.NewStyle().Bold(true).Foreground(style.AccentColor).Render(icon.Get(icon.Play))
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() (title string) {
	title = t.row.Title
	if title == "" {
		title = t.row.ID
	}

	if t.marked {
		title = fmt.Sprintf("%s %s", title, t.getMark())
	}

	return
}

// Description renders the quality tag, the source site and optionally the stream link.
func (t *listItem) Description() string {
	var parts []string

	tag := style.Tag(style.Base, status.Color(t.row.Class.State()))
	parts = append(parts, tag(t.row.Label))

	if t.row.Source != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(style.Subtext).Render(t.row.Source))
	}

	if viper.GetBool(key.TUIShowURLs) {
		link := nav.Location{Base: t.base, Fragment: t.row.ID}.String()
		parts = append(parts, style.Fg(style.FaintColor)(link))
	}

	return strings.Join(parts, " • ")
}

// FilterValue returns the string used for real-time list filtering.
func (t *listItem) FilterValue() string {
	return t.row.FilterValue()
}
