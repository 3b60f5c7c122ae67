package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain"
)

// getPathToken extracts the session token path parameter.
func getPathToken(r *http.Request) (domain.Token, error) {
	raw := chi.URLParam(r, "token")
	if raw == "" || len(raw) > 64 {
		return "", domain.ErrUnknownToken
	}
	return domain.Token(raw), nil
}

// getPathBookSession parses the {session} path parameter as 1..3.
func getPathBookSession(r *http.Request) (domain.BookSession, error) {
	n, err := strconv.Atoi(chi.URLParam(r, "session"))
	if err != nil {
		return 0, domain.ErrInvalidSession
	}
	session := domain.BookSession(n)
	if err := session.Validate(); err != nil {
		return 0, err
	}
	return session, nil
}

// getPathItemType parses the {type} path parameter.
func getPathItemType(r *http.Request) (domain.ItemType, error) {
	return domain.ParseItemType(chi.URLParam(r, "type"))
}

// getPathCorpus parses the {corpus} path parameter.
func getPathCorpus(r *http.Request) (domain.Corpus, error) {
	return domain.ParseCorpus(chi.URLParam(r, "corpus"))
}
