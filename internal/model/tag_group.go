package model

// TagGroup holds the paths that were assigned one tag.
type TagGroup struct {
	Tag   string
	Paths []string
}

// TagGroups maps tags to paths while remembering the order in which each
// tag was first seen.
type TagGroups struct {
	index  map[string]int
	groups []TagGroup
}

// NewTagGroups returns an empty grouping.
func NewTagGroups() *TagGroups {
	return &TagGroups{index: make(map[string]int)}
}

// Add appends path to the group for tag, creating the group on first use.
func (g *TagGroups) Add(tag, path string) {
	if i, ok := g.index[tag]; ok {
		g.groups[i].Paths = append(g.groups[i].Paths, path)
		return
	}
	g.index[tag] = len(g.groups)
	g.groups = append(g.groups, TagGroup{Tag: tag, Paths: []string{path}})
}

// Groups returns the groups in first-seen order.
func (g *TagGroups) Groups() []TagGroup {
	return g.groups
}

// Len returns the number of distinct tags.
func (g *TagGroups) Len() int {
	return len(g.groups)
}
