// Package render provides terminal and diagram renderers for category data.
//
// # Overview
//
// Two renderers share the same inputs produced by pkg/category and
// pkg/graph:
//
//   - [table]: the flattened forest as a bordered terminal table, one row per
//     category with indentation by level
//   - [nodelink]: the category graph as a Graphviz DOT document or SVG
//
// Both are pure with respect to their inputs; neither fetches data.
package render
