package statistic

// orderedMap is a string-keyed map that iterates in first-insertion order.
type orderedMap[V any] struct {
	keys   []string
	index  map[string]int
	values []V
}

func newOrderedMap[V any]() *orderedMap[V] {
	return &orderedMap[V]{index: make(map[string]int)}
}

// update applies fn to the value stored under key, inserting the zero value first if absent.
func (m *orderedMap[V]) update(key string, fn func(*V)) {
	i, ok := m.index[key]
	if !ok {
		var zero V
		i = len(m.values)
		m.index[key] = i
		m.keys = append(m.keys, key)
		m.values = append(m.values, zero)
	}
	fn(&m.values[i])
}

func (m *orderedMap[V]) each(fn func(key string, value V)) {
	for i, key := range m.keys {
		fn(key, m.values[i])
	}
}

func (m *orderedMap[V]) len() int { return len(m.keys) }

// runningMean accumulates a sum and count.
type runningMean struct {
	total float64
	count int
}

func (r *runningMean) add(value float64) {
	r.total += value
	r.count++
}

func (r runningMean) mean() float64 {
	if r.count == 0 {
		return 0
	}
	return r.total / float64(r.count)
}
