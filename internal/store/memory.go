package store

// Memory is an in-process Store, used by tests.
type Memory struct {
	records map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{records: map[string][]byte{}}
}

func (m *Memory) Get(key string) ([]byte, bool, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return nil, false, err
	}
	v, ok := m.records[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Memory) Put(key string, value []byte) error {
	return m.PutBatch([]Record{{Key: key, Value: value}})
}

func (m *Memory) PutBatch(records []Record) error {
	staged := make(map[string][]byte, len(records))
	for _, r := range records {
		key, err := normalizeKey(r.Key)
		if err != nil {
			return err
		}
		staged[key] = append([]byte(nil), r.Value...)
	}
	for k, v := range staged {
		m.records[k] = v
	}
	return nil
}

func (m *Memory) Delete(key string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	delete(m.records, key)
	return nil
}
