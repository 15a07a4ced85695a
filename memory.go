package locqa

import "unicode/utf8"

// History is a bounded conversation history. Appending beyond the
// maximum length drops the oldest turn. Assistant replies are truncated
// to the configured cap before storage to bound prompt size.
type History struct {
	max  int
	cap  int
	list []Turn
}

// NewHistory creates a History retaining at most max turns, truncating
// stored assistant text to assistantCap characters.
func NewHistory(max, assistantCap int) *History {
	return &History{max: max, cap: assistantCap}
}

// Append records one exchange, trimming from the oldest end if needed.
func (h *History) Append(user, assistant string) {
	if h.cap > 0 && len(assistant) > h.cap {
		// Back off to a rune boundary so the cut never produces
		// invalid UTF-8.
		cut := h.cap
		for cut > 0 && !utf8.RuneStart(assistant[cut]) {
			cut--
		}
		assistant = assistant[:cut]
	}
	h.list = append(h.list, Turn{User: user, Assistant: assistant})
	if h.max > 0 && len(h.list) > h.max {
		h.list = h.list[len(h.list)-h.max:]
	}
}

// Turns returns the retained turns, oldest first. The returned slice
// must not be mutated.
func (h *History) Turns() []Turn {
	return h.list
}

// Len returns the number of retained turns.
func (h *History) Len() int {
	return len(h.list)
}

// FileMemory maps file paths to loaded (possibly truncated) content.
// Insertion order is significant: Compact evicts the oldest-inserted
// entries first; eviction ignores access recency.
//
// The cache is unbounded while a single agentic search runs; the
// session compacts it after the loop returns.
type FileMemory struct {
	capacity int
	order    []string
	contents map[string]string
}

// NewFileMemory creates a FileMemory compacted to capacity entries.
func NewFileMemory(capacity int) *FileMemory {
	return &FileMemory{
		capacity: capacity,
		contents: make(map[string]string),
	}
}

// Get returns the cached content for path.
func (m *FileMemory) Get(path string) (string, bool) {
	content, ok := m.contents[path]
	return content, ok
}

// Put stores content for path. Re-inserting an existing path updates
// the content without changing its eviction position.
func (m *FileMemory) Put(path, content string) {
	if _, ok := m.contents[path]; !ok {
		m.order = append(m.order, path)
	}
	m.contents[path] = content
}

// Compact evicts oldest-inserted entries until the cache is at or
// under capacity.
func (m *FileMemory) Compact() {
	if m.capacity <= 0 {
		return
	}
	for len(m.order) > m.capacity {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.contents, oldest)
	}
}

// Paths returns the cached paths in insertion order.
func (m *FileMemory) Paths() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of cached entries.
func (m *FileMemory) Len() int {
	return len(m.order)
}

// Clear removes all cached entries.
func (m *FileMemory) Clear() {
	m.order = nil
	m.contents = make(map[string]string)
}
