package models

// IdentifierMap maps position keys to multiline note text. Keys iterate in
// first-insertion order; setting an existing key overwrites its text without
// moving it (last write wins).
type IdentifierMap struct {
	keys []string
	text map[string]string
}

// NewIdentifierMap returns an empty IdentifierMap.
func NewIdentifierMap() *IdentifierMap {
	return &IdentifierMap{text: make(map[string]string)}
}

// Set stores text under key.
func (m *IdentifierMap) Set(key, text string) {
	if _, ok := m.text[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.text[key] = text
}

// Get returns the text for key.
func (m *IdentifierMap) Get(key string) (string, bool) {
	text, ok := m.text[key]
	return text, ok
}

// Keys returns the keys in insertion order.
func (m *IdentifierMap) Keys() []string {
	return m.keys
}

// Len returns the number of entries.
func (m *IdentifierMap) Len() int {
	return len(m.keys)
}

// MetricMap maps position keys to a metric value. Keys iterate in insertion
// order, which for extracted metrics is position order 001..N.
type MetricMap struct {
	keys   []string
	values map[string]float64
}

// NewMetricMap returns an empty MetricMap.
func NewMetricMap() *MetricMap {
	return &MetricMap{values: make(map[string]float64)}
}

// Set stores value under key.
func (m *MetricMap) Set(key string, value float64) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key.
func (m *MetricMap) Get(key string) (float64, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *MetricMap) Keys() []string {
	return m.keys
}

// Values returns the values in key order.
func (m *MetricMap) Values() []float64 {
	out := make([]float64, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.values[k])
	}
	return out
}

// Len returns the number of entries.
func (m *MetricMap) Len() int {
	return len(m.keys)
}
