package tui

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/bubbles/list"
	"github.com/dustin/go-humanize"

	"jumpstat/internal/core/aggregate"
)

type tagItem struct {
	name  string
	count int
}

func (i tagItem) FilterValue() string { return i.name }

func (i tagItem) Title() string { return i.name }

func (i tagItem) Description() string {
	return fmt.Sprintf("%s events", humanize.Comma(int64(i.count)))
}

type tagDelegate struct {
	list.DefaultDelegate
}

func (d tagDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	t, ok := item.(tagItem)
	if !ok {
		d.DefaultDelegate.Render(w, m, index, item)
		return
	}

	line := fmt.Sprintf("%s  (%s)", t.name, humanize.Comma(int64(t.count)))
	if index == m.Index() {
		fmt.Fprint(w, selectedItemStyle.Render("> "+line))
	} else {
		fmt.Fprint(w, itemStyle.Render(line))
	}
}

func tagItems(ds *aggregate.Dataset) []list.Item {
	tags := make([]tagItem, 0, len(ds.TagCounts))
	for name, count := range ds.TagCounts {
		tags = append(tags, tagItem{name: name, count: count})
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].count != tags[j].count {
			return tags[i].count > tags[j].count
		}
		return tags[i].name < tags[j].name
	})

	items := make([]list.Item, len(tags))
	for i, t := range tags {
		items[i] = t
	}
	return items
}

func createTagList(ds *aggregate.Dataset, width, height int) list.Model {
	delegate := tagDelegate{DefaultDelegate: list.NewDefaultDelegate()}
	delegate.SetHeight(1)
	delegate.SetSpacing(0)

	l := list.New(tagItems(ds), delegate, width, height)
	l.Title = ""
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)

	return l
}
