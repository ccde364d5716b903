//go:build js && wasm

// Command flexlist-wasm runs the query engine in the browser. It takes over
// a shell rendered by the web package: the embedded dataset is decoded,
// control events are dispatched to the engine, and the table body and
// pagination are re-rendered from the resulting view.
package main

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"syscall/js"

	"github.com/fwojciec/flexlist"
	"github.com/fwojciec/flexlist/bloom"
	"github.com/fwojciec/flexlist/goquery"
	"github.com/fwojciec/flexlist/query"
	"github.com/fwojciec/flexlist/web"
	"golang.org/x/text/language"
)

// table is the client-side state of one rendered shell.
type table struct {
	root   js.Value
	engine flexlist.QueryEngine
	shell  *web.Shell
	state  flexlist.ViewState
}

func main() {
	doc := js.Global().Get("document")
	root := doc.Call("getElementById", "flexlist-engine")
	data := doc.Call("getElementById", "flexlist-data")
	if root.IsNull() || data.IsNull() {
		println("[flexlist] no table on this page")
		return
	}

	ds, err := flexlist.DecodeDataset(strings.NewReader(data.Get("textContent").String()))
	if err != nil {
		println("[flexlist] decode dataset:", err.Error())
		return
	}

	tag := pageLanguage(doc)
	t := &table{
		root: root,
		engine: query.New(ds, goquery.NewStripper(),
			query.WithLocale(tag),
			query.WithPrefilter(bloom.NewTrigramIndexBuilder()),
		),
		shell: web.NewShell(web.WithLanguage(tag)),
		state: flexlist.NewViewState(ds.Settings),
	}
	t.listen()

	js.Global().Set("Flexlist", js.ValueOf(map[string]any{
		"view": js.FuncOf(t.viewJSON),
	}))

	select {}
}

// pageLanguage matches the document language against the supported
// message languages.
func pageLanguage(doc js.Value) language.Tag {
	lang := doc.Get("documentElement").Get("lang")
	if lang.IsUndefined() || lang.String() == "" {
		return web.Supported[0]
	}
	return web.MatchLanguage(lang.String())
}

func (t *table) listen() {
	t.on(t.find(".search"), "input", func(target js.Value, _ js.Value) flexlist.Action {
		return flexlist.SearchAction{Query: target.Get("value").String()}
	})
	t.on(t.find(".group-by-select"), "change", func(target js.Value, _ js.Value) flexlist.Action {
		return flexlist.SetGroupAction{Key: target.Get("value").String()}
	})
	t.on(t.find(".pagination-select"), "change", func(target js.Value, _ js.Value) flexlist.Action {
		size, ok := flexlist.ParsePageSize(target.Get("value").String())
		if !ok {
			return nil
		}
		return flexlist.SetPageSizeAction{Size: size}
	})
	t.on(t.root, "change", func(target js.Value, _ js.Value) flexlist.Action {
		if !target.Get("classList").Call("contains", "filter-checkbox").Bool() {
			return nil
		}
		return flexlist.ToggleFilterAction{
			Key:   target.Get("dataset").Get("filterKey").String(),
			Value: target.Get("value").String(),
		}
	})
	t.on(t.root, "click", t.click)
}

// click handles clicks delegated from the shell root.
func (t *table) click(target js.Value, event js.Value) flexlist.Action {
	if btn := target.Call("closest", "button.sort"); !btn.IsNull() {
		return flexlist.ToggleSortAction{
			Key:   btn.Get("dataset").Get("sort").String(),
			Multi: event.Get("shiftKey").Bool(),
		}
	}
	if btn := target.Call("closest", "button.filter-toggle"); !btn.IsNull() {
		if popup := btn.Get("nextElementSibling"); !popup.IsNull() {
			popup.Get("classList").Call("toggle", "show")
		}
		return nil
	}
	if link := target.Call("closest", "a[data-page]"); !link.IsNull() {
		event.Call("preventDefault")
		page, err := strconv.Atoi(link.Get("dataset").Get("page").String())
		if err != nil {
			return nil
		}
		return flexlist.SetPageAction{Page: page}
	}
	return nil
}

// on dispatches the action built from each event on el. A nil action
// leaves the view untouched.
func (t *table) on(el js.Value, event string, action func(target, event js.Value) flexlist.Action) {
	if el.IsNull() {
		return
	}
	el.Call("addEventListener", event, js.FuncOf(func(_ js.Value, args []js.Value) any {
		ev := args[0]
		if a := action(ev.Get("target"), ev); a != nil {
			t.state = t.engine.Dispatch(t.state, a)
			t.render()
		}
		return nil
	}))
}

func (t *table) find(selector string) js.Value {
	return t.root.Call("querySelector", selector)
}

// render replaces the table body and pagination and updates the sort
// indicators.
func (t *table) render() {
	view := t.engine.View(t.state)

	var buf bytes.Buffer
	if err := t.shell.RenderBody(&buf, view); err != nil {
		println("[flexlist] render body:", err.Error())
		return
	}
	t.find("tbody.list").Set("innerHTML", buf.String())

	buf.Reset()
	if err := t.shell.RenderPagination(&buf, view); err != nil {
		println("[flexlist] render pagination:", err.Error())
		return
	}
	t.find("p.pagination").Set("innerHTML", buf.String())

	buttons := t.root.Call("querySelectorAll", "button.sort")
	for i := 0; i < buttons.Length(); i++ {
		btn := buttons.Index(i)
		classes := btn.Get("classList")
		classes.Call("remove", string(flexlist.Asc), string(flexlist.Desc))
		if dir, ok := t.state.SortDirection(btn.Get("dataset").Get("sort").String()); ok {
			classes.Call("add", string(dir))
		}
	}
}

// viewJSON returns the current view as JSON, for scripts embedding the
// table.
func (t *table) viewJSON(_ js.Value, _ []js.Value) any {
	b, err := json.Marshal(t.engine.View(t.state))
	if err != nil {
		return js.ValueOf(map[string]any{"error": err.Error()})
	}
	return string(b)
}
