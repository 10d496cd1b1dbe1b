package normalize

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/matsen/bibfmt/internal/reference"
	"github.com/matsen/bibfmt/internal/shortdoi"
)

// DOIURLMode selects how DOI resolver URLs are rewritten.
type DOIURLMode string

const (
	DOIURLUnchanged DOIURLMode = "unchanged" // leave URLs as they are
	DOIURLNew       DOIURLMode = "new"       // https://doi.org/<DOI>
	DOIURLShort     DOIURLMode = "short"     // https://doi.org/<shortDOI>
)

// DOIURLModes lists the accepted mode names.
var DOIURLModes = []DOIURLMode{DOIURLUnchanged, DOIURLNew, DOIURLShort}

// ErrNoResolver is returned when short mode is requested without a resolver.
var ErrNoResolver = errors.New("short DOI mode requires a resolver")

// ParseDOIURLMode validates a mode name.
func ParseDOIURLMode(s string) (DOIURLMode, error) {
	for _, m := range DOIURLModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid DOI URL type %q (valid: unchanged, new, short)", s)
}

var doiURLPattern = regexp.MustCompile(`^https?://(?:dx\.)?doi\.org/(.+)$`)

// DOIFromURL returns the DOI of a doi.org resolver URL.
func DOIFromURL(url string) (string, bool) {
	m := doiURLPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// AdaptDOIURLs rewrites the url field of entries pointing at a DOI resolver.
// In short mode, lookups that fail leave the URL untouched; only an unknown
// mode or a missing resolver is an error.
func AdaptDOIURLs(ctx context.Context, lib *reference.Library, mode DOIURLMode, resolver shortdoi.Resolver) error {
	var urlFromDOI func(doi string) (string, bool)

	switch mode {
	case DOIURLUnchanged:
		return nil
	case DOIURLNew:
		urlFromDOI = func(doi string) (string, bool) {
			return "https://doi.org/" + doi, true
		}
	case DOIURLShort:
		if resolver == nil {
			return ErrNoResolver
		}
		urlFromDOI = func(doi string) (string, bool) {
			short, err := resolver.ShortDOI(ctx, doi)
			if err != nil {
				logger().Debug("short DOI lookup failed, keeping URL", "doi", doi, "error", err)
				return "", false
			}
			return "https://doi.org/" + short, true
		}
	default:
		return fmt.Errorf("unknown DOI URL type %q", mode)
	}

	lib.Each(func(key string, e *reference.Entry) {
		url, ok := e.Fields.GetText("url")
		if !ok {
			return
		}
		doi, ok := DOIFromURL(url)
		if !ok {
			return
		}
		if newURL, ok := urlFromDOI(doi); ok {
			e.Fields.SetText("url", newURL)
		}
	})
	return nil
}
