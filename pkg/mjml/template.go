package mjml

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Variables maps placeholder names to values. A value is a string, a nested
// *Template, or a sequence ([]any, []string, []*Template) of those; any other
// scalar is stringified with fmt.Sprint.
type Variables map[string]any

// Template is a renderable node: a named fragment plus the variable mapping
// substituted into it. Rendered output is fully determined by the name and
// variables; repeated renders of an unmodified node yield identical output
// because the fragment content is fetched once and memoized, fetch failure
// included.
type Template struct {
	name      string
	variables Variables
	source    FragmentSource

	once    sync.Once
	content string
	loadErr error
}

// New creates a Template node backed by the given fragment source. The
// fragment content is not fetched until the first Render or Content call.
func New(source FragmentSource, name string, variables Variables) *Template {
	return &Template{
		name:      name,
		variables: variables,
		source:    source,
	}
}

// Name returns the fragment name this node resolves to.
func (t *Template) Name() string { return t.name }

// Content returns the fragment source text, fetching it on first use. Both
// the content and a fetch error are memoized; there is no retry.
func (t *Template) Content(ctx context.Context) (string, error) {
	if t.source == nil {
		return "", ErrNoSource
	}
	t.once.Do(func() {
		t.content, t.loadErr = t.source.Fragment(ctx, t.name)
	})
	return t.content, t.loadErr
}

// Render produces the node's final markup: it fetches the fragment, flattens
// the variable tree (rendering nested nodes), and runs the substitution pass.
func (t *Template) Render(ctx context.Context) (string, error) {
	content, err := t.Content(ctx)
	if err != nil {
		return "", err
	}

	flat, err := FlattenVariables(ctx, t.variables)
	if err != nil {
		return "", err
	}
	return ReplaceVariables(content, flat), nil
}

// FlattenVariables resolves a variable mapping into a flat string map.
// Scalars are normalized to single-element sequences; nested Templates are
// rendered recursively; same-key elements are joined with a single newline.
// Entries are flattened concurrently. The result is keyed, so completion
// order is irrelevant.
func FlattenVariables(ctx context.Context, variables Variables) (map[string]string, error) {
	flat := make(map[string]string, len(variables))

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	for name, value := range variables {
		g.Go(func() error {
			values := normalize(value)
			parts := make([]string, len(values))
			for i, v := range values {
				switch v := v.(type) {
				case *Template:
					rendered, err := v.Render(ctx)
					if err != nil {
						return err
					}
					parts[i] = rendered
				case string:
					parts[i] = v
				default:
					parts[i] = fmt.Sprint(v)
				}
			}

			mu.Lock()
			flat[name] = strings.Join(parts, "\n")
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return flat, nil
}

func normalize(value any) []any {
	switch v := value.(type) {
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	case []*Template:
		out := make([]any, len(v))
		for i, t := range v {
			out[i] = t
		}
		return out
	default:
		return []any{value}
	}
}

// placeholderPattern matches both substitution forms with optional
// surrounding spaces trimmed from the captured name.
var placeholderPattern = regexp.MustCompile(`\{\{ *(.+?) *\}\}|\{!! *(.+?) *!!\}`)

// ReplaceVariables performs a single left-to-right, non-overlapping
// substitution pass over content. {{ name }} occurrences are replaced with
// the HTML-escaped value, {!! name !!} with the raw value. Names absent from
// the map are replaced with the empty string. Substituted values are not
// re-scanned for further placeholders.
func ReplaceVariables(content string, variables map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := placeholderPattern.FindStringSubmatch(match)

		name, escaped := groups[1], true
		if name == "" {
			name, escaped = groups[2], false
		}

		value, ok := variables[name]
		if !ok {
			return ""
		}
		if escaped {
			value = EscapeHTML(value)
		}
		return value
	})
}
