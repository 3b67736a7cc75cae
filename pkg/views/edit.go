package views

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-bread/pkg/store"
)

func (b *Bread) handleEdit() http.Handler {
	def := defFor("edit")
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

		form, err := b.newForm()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		data := b.baseContext(id)
		data["object"] = rec
		data["pk"] = pk

		if r.Method == http.MethodPost {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "parse form: "+err.Error(), http.StatusBadRequest)
				return
			}
			form.BindValues(r.PostForm)
			if form.Validate() {
				if err := b.records.Update(r.Context(), pk, form.CleanedData()); err != nil {
					http.Error(w, "update record: "+err.Error(), http.StatusInternalServerError)
					return
				}
				http.Redirect(w, r, b.routePath("browse"), http.StatusFound)
				return
			}
			data["form_fields"] = form.Fields()
			data["form_errors"] = form.ErrorMap()
			b.renderView(w, def, http.StatusBadRequest, data)
			return
		}

		form.BindRecord(rec)
		data["form_fields"] = form.Fields()
		b.renderView(w, def, http.StatusOK, data)
	})
}

func (b *Bread) handleAdd() http.Handler {
	def := defFor("add")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := b.authorize(w, r, def.action)
		if !ok {
			return
		}

		form, err := b.newForm()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		data := b.baseContext(id)

		if r.Method == http.MethodPost {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "parse form: "+err.Error(), http.StatusBadRequest)
				return
			}
			form.BindValues(r.PostForm)
			if form.Validate() {
				if _, err := b.records.Create(r.Context(), form.CleanedData()); err != nil {
					http.Error(w, "create record: "+err.Error(), http.StatusInternalServerError)
					return
				}
				http.Redirect(w, r, b.routePath("browse"), http.StatusFound)
				return
			}
			data["form_fields"] = form.Fields()
			data["form_errors"] = form.ErrorMap()
			b.renderView(w, def, http.StatusBadRequest, data)
			return
		}

		data["form_fields"] = form.Fields()
		b.renderView(w, def, http.StatusOK, data)
	})
}
