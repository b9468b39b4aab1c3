package doctree

// Document is an input file held fully in memory.
type Document struct {
	Path    string // Source path as given on the command line
	Content string // Decoded file contents
}

// TextNode is a maximal run of character data outside any tag.
type TextNode struct {
	Data string // Verbatim text, character references decoded
}
