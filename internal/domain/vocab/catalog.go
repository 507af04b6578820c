package vocab

// Entry pairs a source-language word with its expected translation.
type Entry struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
}

// Catalog is the read-only, ordered word list served to the game client.
// It is built once at startup and never mutated afterwards, so handlers can
// share it without locking.
type Catalog struct {
	entries []Entry
	index   map[string]string
}

// defaultEntries is the fixed practice set. Order matters: the client walks
// the list gate by gate.
var defaultEntries = []Entry{
	{Word: "кошка", Translation: "cat"},
	{Word: "собака", Translation: "dog"},
	{Word: "дом", Translation: "house"},
	{Word: "машина", Translation: "car"},
	{Word: "мама", Translation: "mother"},
}

// Default builds the catalog from the fixed literal set.
func Default() *Catalog {
	return NewCatalog(defaultEntries)
}

// NewCatalog copies the given entries into an immutable catalog.
func NewCatalog(entries []Entry) *Catalog {
	c := &Catalog{
		entries: make([]Entry, len(entries)),
		index:   make(map[string]string, len(entries)),
	}
	copy(c.entries, entries)
	for _, e := range entries {
		c.index[e.Word] = e.Translation
	}
	return c
}

// Entries returns the catalog in declaration order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Words returns the source-language words in catalog order.
func (c *Catalog) Words() []string {
	words := make([]string, len(c.entries))
	for i, e := range c.entries {
		words[i] = e.Word
	}
	return words
}

// Translations returns the word-to-translation mapping.
func (c *Catalog) Translations() map[string]string {
	out := make(map[string]string, len(c.index))
	for k, v := range c.index {
		out[k] = v
	}
	return out
}

// Translation looks up the expected translation for a word.
func (c *Catalog) Translation(word string) (string, bool) {
	t, ok := c.index[word]
	return t, ok
}

// Len reports the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}
