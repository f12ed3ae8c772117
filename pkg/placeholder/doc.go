// Package placeholder scans template bodies and composes rendered output.
//
// A body is tokenized once into text, variable references ({{ name }}),
// condition markers ({{%name%}} / {{/%name%}}), else separators ({{else}}),
// repeat markers ({{#each items}} / {{/each}}) and start tags carrying a
// data-hyperlink-id or data-cta-id attribute. Markers are paired into spans,
// the spans are built into a tree and the tree is walked once per render.
// Because values are written straight into the output, a formatted value is
// never scanned for further placeholders.
//
// Anything that does not resolve (unknown names, unmatched closing markers,
// stray else separators) is emitted as the literal text it was written as.
package placeholder
