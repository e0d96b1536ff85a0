package collection

// Pick returns a new record holding the requested keys that exist in record.
// Values are not copied.
func Pick(record Record, keys ...string) Record {
	out := make(Record, len(keys))
	for _, k := range keys {
		if v, ok := record[k]; ok {
			out[k] = v
		}
	}
	return out
}

// PickFields is Pick with the result ordered by keys. Repeated keys are
// reported once.
func PickFields(record Record, keys ...string) []Field {
	out := make([]Field, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if v, ok := record[k]; ok {
			out = append(out, Field{Key: k, Value: v})
		}
	}
	return out
}
