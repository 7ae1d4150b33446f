package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"funnel/internal/domain"
)

// downloadUnavailableMessage is deliberately the same for an unknown token and
// a known-but-pending one, so callers cannot probe which tokens exist.
const downloadUnavailableMessage = "This download link is invalid or not ready yet."

// ResolveDownload exchanges the bearer token in the URL for the purchase and
// its downloadable contents.
func (a *App) ResolveDownload(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	purchase, items, err := a.Checkout.ResolveDownload(r.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrAccessDenied) {
			a.error(w, http.StatusNotFound, "unavailable", downloadUnavailableMessage)
			return
		}
		a.domainError(w, err)
		return
	}

	view := viewPurchase(purchase)
	// The page identifies the buyer; the credential is not echoed back.
	view.Token = ""
	a.json(w, http.StatusOK, map[string]any{
		"purchase":     view,
		"packageItems": viewPackageItems(items),
	})
}
