// Package document is the top-level facade tying every parsing stage
// together into one call per input file (spec.md §2's pipeline: Scanner
// → Frontmatter → Block Parser → Inline Parser → optional Validator),
// plus the doc-comment path for non-markdown source files (spec.md
// §4.5, §6). Grounded on the teacher's top-level Parser.Parse shape
// (pkg/parser/goldmark/parser.go): accept a context for cooperative
// cancellation, build a result shell, run each stage in order.
package document

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bukvar/bukvar/pkg/blockparser"
	"github.com/bukvar/bukvar/pkg/dast"
	"github.com/bukvar/bukvar/pkg/doccomment"
	"github.com/bukvar/bukvar/pkg/frontmatter"
	"github.com/bukvar/bukvar/pkg/inlineparser"
	"github.com/bukvar/bukvar/pkg/validator"
)

// Options configures a single Parse call.
type Options struct {
	// Validate runs the Validator over the resulting tree and populates
	// Result.Diagnostics.
	Validate bool
}

// Result is everything a single Parse call produces.
type Result struct {
	Document     *dast.Node
	Frontmatter  frontmatter.Result // zero value for non-markdown input
	Diagnostics  []validator.Diagnostic
}

// Parse dispatches on ext (a recognized extension from spec.md §6, e.g.
// ".md" or ".py") and runs the matching pipeline over content. ctx is
// checked cooperatively between stages, the same granularity the
// external driver uses between files (spec.md §5): the parser core
// itself never blocks or suspends mid-file.
func Parse(ctx context.Context, ext string, content []byte, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("document: parse cancelled: %w", err)
	}

	if style := doccomment.StyleForExtension(normalizeExt(ext)); style != "" {
		return parseDocComment(content, style, opts)
	}
	return parseMarkdown(ctx, content, opts)
}

// ParseFile is a convenience wrapper that derives the extension from
// path, matching the shape file-discovery driver code naturally produces.
func ParseFile(ctx context.Context, path string, content []byte, opts Options) (*Result, error) {
	return Parse(ctx, filepath.Ext(path), content, opts)
}

func normalizeExt(ext string) string {
	return strings.ToLower(ext)
}

func parseMarkdown(ctx context.Context, content []byte, opts Options) (*Result, error) {
	res := blockparser.Parse(content)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("document: parse cancelled: %w", err)
	}

	linkDefs := make(map[string]inlineparser.LinkDef, len(res.LinkDefs))
	for label, def := range res.LinkDefs {
		linkDefs[label] = inlineparser.LinkDef{URL: def.URL, Title: def.Title}
	}
	footnoteDefs := make(map[string]bool, len(res.FootnoteDefs))
	for label := range res.FootnoteDefs {
		footnoteDefs[label] = true
	}
	resolver := &inlineparser.Resolver{LinkDefs: linkDefs, FootnoteDefs: footnoteDefs}

	for _, leaf := range res.Leaves {
		inlineparser.ParseLeaf(leaf, leaf.Str(dast.AttrTextContent), leaf.Span.Start, resolver)
	}

	out := &Result{Document: res.Document, Frontmatter: res.Frontmatter}
	if opts.Validate {
		out.Diagnostics = validator.Validate(validator.Input{
			Document:       res.Document,
			UnresolvedRefs: resolver.UnresolvedRefs,
		})
	}
	return out, nil
}

// parseDocComment wraps every doc-comment fragment Extract finds into a
// single per-file root. Each fragment is already its own NodeDocument
// (description Paragraph + DocTag children); nesting them under one
// outer NodeDocument keeps the "one tree per file" contract the CLI/
// encoders expect without doccomment.go needing to know about files at
// all — it only ever sees a content buffer and a style.
func parseDocComment(content []byte, style doccomment.Style, opts Options) (*Result, error) {
	fragments := doccomment.Extract(content, style)

	root := dast.New(dast.NodeDocument)
	if len(content) > 0 {
		root.Span.End = len(content)
	}
	for _, f := range fragments {
		dast.AppendChild(root, f)
	}

	out := &Result{Document: root}
	if opts.Validate {
		out.Diagnostics = validator.Validate(validator.Input{Document: root})
	}
	return out, nil
}
