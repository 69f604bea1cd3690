// Package comments rebuilds the reply forest for one post from the flat
// parent-pointer comment set. The forest is reconstructed in full on every
// change to the flat set; nothing is patched incrementally.
package comments

import (
	"sort"

	"github.com/moranr123/Pawsafety-sub002/internal/models"
)

// BuildForest turns a flat comment set into the reply forest. Top-level
// comments (empty ParentID) and orphans (ParentID not present in the input
// set) become roots; replies attach under their parent. Roots and children
// are ordered ascending by CreatedAt to preserve conversational order, with
// ids breaking ties deterministically. TotalDescendantCount on each node
// counts all transitively reachable replies. Like state is derived for the
// given principal, with the count deduplicated.
//
// The build is iterative throughout; reply chains of arbitrary depth never
// grow the call stack.
func BuildForest(flat []models.Comment, principal string) []*models.CommentNode {
	nodes := make(map[string]*models.CommentNode, len(flat))
	for _, c := range flat {
		nodes[c.CommentID] = newNode(c, principal)
	}

	var roots []*models.CommentNode
	for _, c := range flat {
		node := nodes[c.CommentID]
		if c.ParentID == "" {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[c.ParentID]
		if !ok || c.ParentID == c.CommentID {
			// Orphaned reply: the parent was deleted out from under it.
			// Reclassify as top-level rather than dropping data.
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	sortSiblings(roots)
	for _, node := range nodes {
		sortSiblings(node.Children)
	}

	countDescendants(roots)
	return roots
}

// CountNodes returns the total number of nodes in a forest.
func CountNodes(roots []*models.CommentNode) int {
	total := 0
	for _, root := range roots {
		total += 1 + root.TotalDescendantCount
	}
	return total
}

func newNode(c models.Comment, principal string) *models.CommentNode {
	liked := false
	distinct := make(map[string]struct{}, len(c.LikedBy))
	for _, uid := range c.LikedBy {
		distinct[uid] = struct{}{}
		if uid == principal {
			liked = true
		}
	}
	return &models.CommentNode{
		Comment:   c,
		LikeCount: len(distinct),
		LikedByMe: liked,
	}
}

func sortSiblings(siblings []*models.CommentNode) {
	sort.Slice(siblings, func(i, j int) bool {
		a, b := siblings[i], siblings[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.CommentID < b.CommentID
	})
}

// countDescendants fills TotalDescendantCount bottom-up using an explicit
// stack: a node is popped once to schedule its children and a second time,
// after them, to sum their subtree sizes.
func countDescendants(roots []*models.CommentNode) {
	type frame struct {
		node     *models.CommentNode
		expanded bool
	}

	stack := make([]frame, 0, len(roots))
	for _, root := range roots {
		stack = append(stack, frame{node: root})
	}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if !top.expanded {
			top.expanded = true
			for _, child := range top.node.Children {
				stack = append(stack, frame{node: child})
			}
			continue
		}
		stack = stack[:len(stack)-1]
		total := 0
		for _, child := range top.node.Children {
			total += 1 + child.TotalDescendantCount
		}
		top.node.TotalDescendantCount = total
	}
}
