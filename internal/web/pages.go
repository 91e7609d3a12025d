package web

import (
	"net/url"
	"slices"
	"strconv"

	"bookconsole/internal/book"
	"bookconsole/internal/column"
	"bookconsole/internal/console"
	"bookconsole/internal/user"
)

// listQuery is the sort and paging state carried in a table URL.
type listQuery struct {
	Sort string
	Desc bool
	Page int
	Rows int
}

func parseListQuery(q url.Values) listQuery {
	page, _ := strconv.Atoi(q.Get("page"))
	rows, _ := strconv.Atoi(q.Get("rows"))
	return listQuery{
		Sort: q.Get("sort"),
		Desc: q.Get("desc") == "true",
		Page: page,
		Rows: rows,
	}
}

func (q listQuery) url(path string) string {
	v := url.Values{}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
		if q.Desc {
			v.Set("desc", "true")
		}
	}
	if q.Page > 1 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Rows != 0 && q.Rows != console.DefaultRows {
		v.Set("rows", strconv.Itoa(q.Rows))
	}
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}

type columnOption struct {
	Field    string
	Header   string
	Selected bool
}

type headerCell struct {
	Header string
	URL    string
	Active bool
	Desc   bool
}

type tableRow struct {
	ID    int64
	Cells []string
}

type rowOption struct {
	Rows     int
	URL      string
	Selected bool
}

type tableView struct {
	Path       string
	Options    []columnOption
	Headers    []headerCell
	Rows       []tableRow
	RowOptions []rowOption
	Summary    string
	Empty      string
	Filter     string
	Page       int
	Pages      int
	PrevURL    string
	NextURL    string
	Actions    bool
}

type formField struct {
	Name     string
	Label    string
	Value    string
	Error    string
	Type     string
	Required bool
	ReadOnly bool
}

type dialogView struct {
	Title        string
	Action       string
	CancelAction string
	SubmitLabel  string
	Image        string
	Fields       []formField
}

type deleteView struct {
	ID           int64
	Title        string
	Action       string
	CancelAction string
}

type pageData struct {
	Title         string
	Tab           console.Tab
	Username      string
	Notifications []console.Notification
	Table         tableView
	Add           *dialogView
	Edit          *dialogView
	Delete        *deleteView
}

type loginData struct {
	Username string
	Error    string
}

func buildPage(snap console.Snapshot, notes []console.Notification, q listQuery, username string) pageData {
	data := pageData{
		Title:         snap.Tab.Title(),
		Tab:           snap.Tab,
		Username:      username,
		Notifications: notes,
	}

	if snap.Tab == console.TabBooks {
		data.Table = buildTable(tabPath(console.TabBooks), snap.Books, func(b book.Book) int64 { return b.ID },
			book.Columns, snap.BookColumns, snap.Filter, q, "No books found.")
		data.Table.Actions = true
		if snap.AddOpen {
			data.Add = &dialogView{
				Title:        "Add a Book",
				Action:       "/books",
				CancelAction: "/books/new/cancel",
				SubmitLabel:  "Add",
				Fields:       buildFields(snap.AddValues, snap.AddErrors, false),
			}
		}
		if snap.EditOpen {
			id := strconv.FormatInt(snap.Selected.ID, 10)
			data.Edit = &dialogView{
				Title:        "Edit Book",
				Action:       "/books/" + id,
				CancelAction: "/books/" + id + "/edit/cancel",
				SubmitLabel:  "Save",
				Image:        snap.EditValues["image"],
				Fields:       buildFields(snap.EditValues, snap.EditErrors, true),
			}
		}
		if snap.DeleteOpen {
			id := strconv.FormatInt(snap.Selected.ID, 10)
			data.Delete = &deleteView{
				ID:           snap.Selected.ID,
				Title:        snap.Selected.Title,
				Action:       "/books/" + id + "/delete",
				CancelAction: "/books/" + id + "/delete/cancel",
			}
		}
		return data
	}

	data.Table = buildTable(tabPath(console.TabUsers), snap.Users, func(u user.User) int64 { return u.ID },
		user.Columns, snap.UserColumns, snap.Filter, q, "No users found.")
	return data
}

func buildTable[T console.Row](path string, items []T, id func(T) int64, reg *column.Registry, visible []column.Meta, filter string, q listQuery, empty string) tableView {
	sortField := q.Sort
	if !reg.Has(sortField) {
		sortField = ""
	}
	page := console.Paginate(items, visible, console.Query{
		Filter: filter,
		Sort:   sortField,
		Desc:   q.Desc,
		Page:   q.Page,
		Rows:   q.Rows,
	})
	q.Sort, q.Page, q.Rows = sortField, page.Page, page.Rows

	t := tableView{
		Path:    path,
		Summary: page.Summary(),
		Empty:   empty,
		Filter:  filter,
		Page:    page.Page,
		Pages:   page.Pages,
	}

	selected := column.Fields(visible)
	for _, c := range reg.Canonical() {
		t.Options = append(t.Options, columnOption{
			Field:    c.Field,
			Header:   c.Header,
			Selected: slices.Contains(selected, c.Field),
		})
	}

	for _, c := range visible {
		next := q
		next.Page = 1
		next.Sort = c.Field
		next.Desc = q.Sort == c.Field && !q.Desc
		t.Headers = append(t.Headers, headerCell{
			Header: c.Header,
			URL:    next.url(path),
			Active: q.Sort == c.Field,
			Desc:   q.Sort == c.Field && q.Desc,
		})
	}

	for _, item := range page.Items {
		row := tableRow{ID: id(item)}
		for _, c := range visible {
			row.Cells = append(row.Cells, item.Cell(c.Field))
		}
		t.Rows = append(t.Rows, row)
	}

	for _, n := range console.RowOptions {
		opt := q
		opt.Rows = n
		opt.Page = 1
		t.RowOptions = append(t.RowOptions, rowOption{Rows: n, URL: opt.url(path), Selected: n == page.Rows})
	}
	if page.HasPrev() {
		prev := q
		prev.Page--
		t.PrevURL = prev.url(path)
	}
	if page.HasNext() {
		next := q
		next.Page++
		t.NextURL = next.url(path)
	}
	return t
}

var requiredFields = []string{"title", "author", "publisher", "genre", "pageCount"}

func fieldType(name string) string {
	switch name {
	case "pageCount", "ratingsCount", "ratings", "hardcoverPrice", "paperbackPrice", "ebookPrice", "audiobookPrice":
		return "number"
	case "description":
		return "textarea"
	}
	return "text"
}

// buildFields lays out the book form. The id is only shown, read-only,
// when editing.
func buildFields(values map[string]string, errs book.FieldErrors, withID bool) []formField {
	fields := make([]formField, 0, len(book.FormFields))
	for _, name := range book.FormFields {
		if name == "bookID" && !withID {
			continue
		}
		fields = append(fields, formField{
			Name:     name,
			Label:    book.Columns.Header(name),
			Value:    values[name],
			Error:    errs[name],
			Type:     fieldType(name),
			Required: slices.Contains(requiredFields, name),
			ReadOnly: name == "bookID",
		})
	}
	return fields
}
