package views

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-bread/pkg/resolver"
	"github.com/goliatone/go-bread/pkg/store"
)

func (b *Bread) handleRead() http.Handler {
	def := defFor("read")
	if b.readResolver != nil {
		// Read-field specs switch the view to a label/value listing.
		def.generic = "bread/label_value_read"
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := b.authorize(w, r, def.action)
		if !ok {
			return
		}

		pk := r.PathValue("pk")
		rec, err := b.records.Get(r.Context(), pk)
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			http.Error(w, "load record: "+err.Error(), http.StatusInternalServerError)
			return
		}

		data := b.baseContext(id)
		data["object"] = rec
		data["pk"] = pk
		if data["may_edit"] == true {
			data["edit_url"] = b.recordPath("edit", pk)
		}
		if data["may_delete"] == true {
			data["delete_url"] = b.recordPath("delete", pk)
		}

		if b.readResolver != nil {
			rctx := resolver.Context{
				resolver.ObjectKey: rec,
				"user":             id.Subject(),
				"request_path":     r.URL.Path,
			}
			fields, err := b.readResolver.Resolve(rec, rctx)
			if err != nil {
				http.Error(w, "resolve read fields: "+err.Error(), http.StatusInternalServerError)
				return
			}
			data["read_fields"] = fields
		} else {
			form, err := b.newForm()
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			form.BindRecord(rec)
			data["form_fields"] = form.Fields()
		}

		b.renderView(w, def, http.StatusOK, data)
	})
}
