package discovery

import "net/url"

// defaultCatalogPaths lists conventionally important paths, in English
// and Spanish, always unioned into the candidate pool. It guarantees a
// non-trivial audit even when both dynamic discovery methods fail.
var defaultCatalogPaths = []string{
	"/contact", "/contacto",
	"/about", "/about-us", "/nosotros", "/quienes-somos",
	"/services", "/servicios",
	"/products", "/productos",
	"/pricing", "/precios",
	"/blog", "/noticias",
	"/faq", "/preguntas-frecuentes",
	"/portfolio", "/proyectos",
	"/team", "/equipo",
	"/careers", "/empleo",
	"/privacy", "/privacidad",
	"/terms", "/terminos",
	"/legal", "/aviso-legal",
}

// CatalogPages returns the default page catalog resolved against the
// base URL, validated like any other discovery source.
func CatalogPages(base *url.URL) []string {
	pages := make([]string, 0, len(defaultCatalogPaths))
	for _, path := range defaultCatalogPaths {
		if normalized, ok := Normalize(path, base); ok {
			pages = append(pages, normalized)
		}
	}
	return pages
}
