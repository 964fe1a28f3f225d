package httpapi

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/dmitrymomot/polyglot/pkg/i18n"
)

//go:embed templates/*.html
var templates embed.FS

var pageTemplate = template.Must(template.ParseFS(templates, "templates/orders.html"))

type languageLink struct {
	Code   string
	Name   string
	Active bool
}

// pageData feeds templates/orders.html. Every label is resolved through tr.
type pageData struct {
	tr        *i18n.Translator
	Locale    string
	Languages []languageLink
	Orders    []orderView
	Total     string
	Revenue   string
}

// T resolves key in the page locale.
func (p pageData) T(key string) string {
	return p.tr.T(key)
}

func (s *Server) orderPage(w http.ResponseWriter, r *http.Request) {
	tr := s.translator(r)

	list, err := s.orders.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sum, err := s.orders.Summary(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	data := pageData{
		tr:      tr,
		Locale:  tr.Locale(),
		Orders:  make([]orderView, 0, len(list)),
		Total:   tr.T("order.total", i18n.M{"count": sum.Count}),
		Revenue: tr.T("order.revenue", i18n.M{"revenue": sum.Revenue}),
	}
	for _, code := range s.resolver.Locales() {
		data.Languages = append(data.Languages, languageLink{
			Code:   code,
			Name:   tr.T("locale.name." + code),
			Active: code == tr.Locale() || code == i18n.BaseLocale(tr.Locale()),
		})
	}
	for _, o := range list {
		data.Orders = append(data.Orders, newOrderView(tr, o))
	}

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
