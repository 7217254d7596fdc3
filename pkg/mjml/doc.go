// Package mjml implements the template engine used to assemble digest
// emails from named MJML fragments.
//
// A Template is a node identified by a fragment name plus a variable mapping.
// Variable values are strings, nested *Template nodes, or ordered sequences
// of either; other scalars are stringified. Rendering flattens the variable
// tree into a flat string map (nested nodes fully rendered first, same-key
// sequence elements joined with a newline) and then performs a single
// left-to-right substitution pass over the fragment source.
//
// Two placeholder forms are recognized:
//
//	{{ name }}   substituted with the HTML-escaped value
//	{!! name !!} substituted verbatim
//
// Placeholders whose name is absent from the flat map are replaced with the
// empty string; anything else in the fragment is left untouched. Substituted
// values are never re-scanned, so user-controlled values cannot inject
// further template expansion; recursive composition happens structurally
// through nested Template nodes instead.
//
// Fragment sources resolve names to fragment text following the
// "mjml/{name}.mjml" path convention. Fragment content is fetched lazily and
// memoized per Template instance, including fetch failures.
//
// A Compiler turns rendered MJML markup into final email HTML. APICompiler
// bridges to the hosted MJML render API; NopCompiler passes markup through
// unchanged for tests and local development.
package mjml
