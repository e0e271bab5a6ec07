package domain

// NodeType is the kind of node in the dashboard browser tree
type NodeType int

const (
	NodeRoot NodeType = iota
	NodeCategory
	NodeProject
)

func (t NodeType) String() string {
	switch t {
	case NodeCategory:
		return "Category"
	case NodeProject:
		return "Project"
	default:
		return "Root"
	}
}

// TreeNode represents a node in the category/project tree for navigation
type TreeNode struct {
	Type       NodeType
	Key        string // category key or project ID
	Name       string
	Icon       string
	Count      int // projects in a category node
	Children   []*TreeNode
	IsExpanded bool
	Parent     *TreeNode
}

// BuildTree returns a root node with one child per category and one
// grandchild per project. Categories start expanded.
func BuildTree(p *Portfolio) *TreeNode {
	root := &TreeNode{Type: NodeRoot, Name: "Portfolio", IsExpanded: true}
	for _, c := range p.Categories {
		cat := &TreeNode{
			Type:       NodeCategory,
			Key:        c.Key,
			Name:       c.Title,
			Icon:       c.Icon,
			Count:      len(c.Projects),
			IsExpanded: true,
			Parent:     root,
		}
		for _, proj := range c.Projects {
			cat.Children = append(cat.Children, &TreeNode{
				Type:   NodeProject,
				Key:    proj.ID,
				Name:   proj.Title,
				Icon:   proj.Icon,
				Parent: cat,
			})
		}
		root.Children = append(root.Children, cat)
	}
	return root
}

// Flatten returns all visible nodes in the tree (for list rendering)
func (n *TreeNode) Flatten() []*TreeNode {
	var result []*TreeNode
	n.flattenRecursive(&result)
	return result
}

func (n *TreeNode) flattenRecursive(result *[]*TreeNode) {
	*result = append(*result, n)
	if n.IsExpanded {
		for _, child := range n.Children {
			child.flattenRecursive(result)
		}
	}
}

// Depth returns the depth of this node in the tree
func (n *TreeNode) Depth() int {
	depth := 0
	for current := n.Parent; current != nil; current = current.Parent {
		depth++
	}
	return depth
}

// Toggle expands or collapses the node
func (n *TreeNode) Toggle() {
	n.IsExpanded = !n.IsExpanded
}

// Expand sets the node as expanded
func (n *TreeNode) Expand() {
	n.IsExpanded = true
}

// Collapse sets the node as collapsed
func (n *TreeNode) Collapse() {
	n.IsExpanded = false
}
