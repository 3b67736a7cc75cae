package views

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/goliatone/go-bread/pkg/resolver"
	"github.com/goliatone/go-bread/pkg/store"
)

// browseRow is one rendered table row: the record's primary key, a link to
// its read view when the subject may read, and the resolved column cells.
type browseRow struct {
	PK    string
	URL   string
	Cells []resolver.ResolvedField
}

// filterField is a browse filter control with its current value.
type filterField struct {
	Name  string
	Label string
	Value string
}

func (b *Bread) handleBrowse() http.Handler {
	def := defFor("browse")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := b.authorize(w, r, def.action)
		if !ok {
			return
		}

		var query store.Query
		filters := make([]filterField, 0, len(b.filterFields))
		for _, name := range b.filterFields {
			label, _ := b.desc.FieldVerboseName(name)
			value := r.URL.Query().Get(name)
			filters = append(filters, filterField{Name: name, Label: label, Value: value})
			if value == "" {
				continue
			}
			if query.Filters == nil {
				query.Filters = make(map[string]string)
			}
			query.Filters[name] = value
		}

		if order := r.URL.Query().Get("o"); order != "" {
			if _, ok := b.desc.Field(strings.TrimPrefix(order, "-")); ok {
				query.OrderBy = order
			}
		}

		page := 1
		if raw := r.URL.Query().Get("page"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				page = n
			}
		}
		if b.pageSize > 0 {
			query.Offset = (page - 1) * b.pageSize
			query.Limit = b.pageSize
		}

		result, err := b.records.List(r.Context(), query)
		if err != nil {
			http.Error(w, "list records: "+err.Error(), http.StatusInternalServerError)
			return
		}

		data := b.baseContext(id)
		mayRead := data["may_read"] == true
		pkField, _ := b.desc.PrimaryKeyField()

		rctx := resolver.Context{"user": id.Subject(), "request_path": r.URL.Path}
		rows := make([]browseRow, 0, len(result.Records))
		for _, rec := range result.Records {
			rctx[resolver.ObjectKey] = rec
			cells, err := b.columnResolver.Resolve(rec, rctx)
			if err != nil {
				http.Error(w, "resolve columns: "+err.Error(), http.StatusInternalServerError)
				return
			}
			row := browseRow{Cells: cells}
			if pkField.Name != "" {
				row.PK = fmt.Sprint(rec[pkField.Name])
			}
			if mayRead && row.PK != "" {
				row.URL = b.recordPath("read", row.PK)
			}
			rows = append(rows, row)
		}

		numPages := 1
		if b.pageSize > 0 && result.Total > b.pageSize {
			numPages = (result.Total + b.pageSize - 1) / b.pageSize
		}

		data["columns"] = b.columnResolver.Labels()
		data["rows"] = rows
		data["object_list"] = result.Records
		data["total"] = result.Total
		data["filters"] = filters
		data["page"] = page
		data["num_pages"] = numPages
		data["is_paginated"] = numPages > 1
		if numPages > 1 {
			// The previous/next links are dropped when they would duplicate
			// the first/last links.
			if page > 1 {
				data["first_url"] = urlWithPage(r, 1)
				if page-1 > 1 {
					data["previous_url"] = urlWithPage(r, page-1)
				}
			}
			if page < numPages {
				data["last_url"] = urlWithPage(r, numPages)
				if page+1 < numPages {
					data["next_url"] = urlWithPage(r, page+1)
				}
			}
		}
		if data["may_add"] == true {
			data["add_url"] = b.routePath("add")
		}

		b.renderView(w, def, http.StatusOK, data)
	})
}
