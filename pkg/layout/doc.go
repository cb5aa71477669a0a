// Package layout assigns 2D coordinates to the nodes of a category graph.
//
// [Apply] performs a layered tidy-tree layout: every node sits on the rank
// given by its depth, children flow downward ([TopBottom]) or rightward
// ([LeftRight]), leaves are packed side by side with a fixed separation and
// each parent is centered over the span of its children. Subtrees occupy
// disjoint bands, so no two boxes on the same rank overlap.
//
// Node boxes have a fixed size (172x36 by default). Positions are the
// top-left corner of each box, with the layout anchored at the origin.
//
// The engine only looks at nodes and edges. Graphs read from hand-written
// files may contain cycles or nodes with several parents: a node is placed
// under the first parent that reaches it, and nodes that no root reaches are
// laid out as additional roots, so layout always terminates.
package layout
