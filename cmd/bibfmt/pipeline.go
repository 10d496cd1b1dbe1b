package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/matsen/bibfmt/internal/export"
	"github.com/matsen/bibfmt/internal/journal"
	"github.com/matsen/bibfmt/internal/latex"
	"github.com/matsen/bibfmt/internal/normalize"
	"github.com/matsen/bibfmt/internal/reference"
	"github.com/matsen/bibfmt/internal/shortdoi"
	"github.com/matsen/bibfmt/internal/storage"
	"github.com/matsen/bibfmt/internal/wordlist"
)

// pipeline is the sequence of normalizations applied to each database
// before it is rendered.
type pipeline struct {
	decode    bool
	drop      []string
	pageSep   string
	doiMode   normalize.DOIURLMode
	resolver  shortdoi.Resolver
	journals  *journal.Table // nil leaves journal names alone
	protector *normalize.TitleProtector
	render    export.Options

	cache *storage.DOICache
}

// pipelineError carries the exit code for a failure to set up the pipeline.
type pipelineError struct {
	code int
	err  error
}

func (e *pipelineError) Error() string { return e.err.Error() }
func (e *pipelineError) Unwrap() error { return e.err }

// newPipeline validates the options and loads the resources they name.
// Invalid option values are ExitError; unreadable resources are
// ExitConfigError.
func newPipeline(f *formatFlags) (*pipeline, error) {
	usage := func(err error) error { return &pipelineError{code: ExitError, err: err} }
	resource := func(err error) error { return &pipelineError{code: ExitConfigError, err: err} }

	p := &pipeline{
		decode:  f.unicode,
		drop:    f.drop,
		pageSep: f.pageRangeSeparator,
	}

	indent, err := export.ParseIndent(f.indent)
	if err != nil {
		return nil, usage(err)
	}
	delims, err := export.ParseDelimiters(f.delimiterType)
	if err != nil {
		return nil, usage(err)
	}
	if f.align < 0 {
		return nil, usage(fmt.Errorf("invalid align value %d (must not be negative)", f.align))
	}
	p.render = export.Options{
		Delimiters: delims,
		Indent:     indent,
		Align:      f.align,
		SortFields: f.sortFields,
		SortByKey:  f.sortByBibkey,
	}

	p.doiMode, err = normalize.ParseDOIURLMode(f.doiURLType)
	if err != nil {
		return nil, usage(err)
	}

	if f.abbrevJournals || f.longJournalNames {
		table, err := journal.Load(f.customAbbrev)
		if err != nil {
			return nil, resource(fmt.Errorf("loading journal table: %w", err))
		}
		if f.longJournalNames {
			table = table.Invert()
		}
		p.journals = table
	}

	if f.protectTitles {
		words := wordlist.Default()
		if f.dictionary != "" {
			words, err = wordlist.Load(f.dictionary)
			if err != nil {
				return nil, resource(fmt.Errorf("loading dictionary: %w", err))
			}
		}
		p.protector = normalize.NewTitleProtector(words)
	}

	if p.doiMode == normalize.DOIURLShort {
		var opts []shortdoi.ClientOption
		if f.shortDOIURL != "" {
			opts = append(opts, shortdoi.WithBaseURL(f.shortDOIURL))
		}
		p.resolver = shortdoi.NewClient(opts...)

		if f.doiCache != "" {
			cache, err := storage.OpenDOICache(f.doiCache)
			if err != nil {
				return nil, resource(fmt.Errorf("opening DOI cache: %w", err))
			}
			p.cache = cache
			p.resolver = &storage.CachedResolver{Cache: cache, Next: p.resolver}
		}
	}

	return p, nil
}

// Close releases the DOI cache, if any.
func (p *pipeline) Close() error {
	if p.cache == nil {
		return nil
	}
	err := p.cache.Close()
	p.cache = nil
	return err
}

// apply runs every normalization on lib in place.
func (p *pipeline) apply(ctx context.Context, lib *reference.Library) error {
	if p.decode {
		lib.Each(func(_ string, e *reference.Entry) {
			*e = *latex.Decode(e)
		})
	}
	if len(p.drop) > 0 {
		normalize.DropFields(lib, p.drop...)
	}
	normalize.CollapseSpaces(lib)
	normalize.SetPageRangeSeparator(lib, p.pageSep)
	if err := normalize.AdaptDOIURLs(ctx, lib, p.doiMode, p.resolver); err != nil {
		return fmt.Errorf("adapting DOI URLs: %w", err)
	}
	if p.journals != nil {
		normalize.AbbreviateJournals(lib, p.journals)
	}
	if p.protector != nil {
		p.protector.Apply(lib)
	}
	return nil
}

// format normalizes and renders lib.
func (p *pipeline) format(ctx context.Context, lib *reference.Library) (string, error) {
	if err := p.apply(ctx, lib); err != nil {
		return "", err
	}
	return export.Render(lib, p.render)
}

// mergeInto adds every entry of src to dst, merging entries whose citation
// key is already present.
func mergeInto(dst, src *reference.Library) {
	dst.Preamble = append(dst.Preamble, src.Preamble...)
	src.Each(func(key string, e *reference.Entry) {
		merged, err := dst.Upsert(key, e)
		if err != nil {
			slog.Warn("skipping entry", "key", key, "error", err)
			return
		}
		if merged {
			slog.Warn("duplicate citation key across inputs, merging entries", "key", key)
		}
	})
}
