package views

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-bread/pkg/store"
)

func (b *Bread) handleDelete() http.Handler {
	def := defFor("delete")
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

		if r.Method == http.MethodPost {
			if err := b.records.Delete(r.Context(), pk); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					http.NotFound(w, r)
					return
				}
				http.Error(w, "delete record: "+err.Error(), http.StatusInternalServerError)
				return
			}
			http.Redirect(w, r, b.routePath("browse"), http.StatusFound)
			return
		}

		data := b.baseContext(id)
		data["object"] = rec
		data["pk"] = pk
		b.renderView(w, def, http.StatusOK, data)
	})
}
