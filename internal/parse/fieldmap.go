package parse

import "github.com/invoice-insights/invoice-insights/internal/textract"

// RawField preserves a summary field exactly as detected, for diagnostics.
type RawField struct {
	Label      string  `json:"label"`
	Value      string  `json:"value"`
	Confidence float32 `json:"confidence"`
}

// FieldMap indexes a document's summary fields by normalized label. When the
// same normalized label appears more than once the later detection wins, which
// matches reading order on multi-section documents.
type FieldMap struct {
	values map[string]string
	labels map[string]string // normalized key -> original label as detected
	raw    []RawField
}

// NewFieldMap builds the index from detected summary fields. Fields missing a
// label or value were already dropped upstream, but empty normalized keys
// (labels that were all punctuation) are skipped here.
func NewFieldMap(fields []textract.Field) *FieldMap {
	fm := &FieldMap{
		values: make(map[string]string, len(fields)),
		labels: make(map[string]string, len(fields)),
	}
	for _, f := range fields {
		if f.Type == "" || f.Value == "" {
			continue
		}
		fm.raw = append(fm.raw, RawField{Label: f.Type, Value: f.Value, Confidence: f.Confidence})
		key := NormalizeLabel(f.Type)
		if key == "" {
			continue
		}
		fm.values[key] = f.Value
		fm.labels[key] = f.Type
	}
	return fm
}

func (fm *FieldMap) Get(key string) (string, bool) {
	v, ok := fm.values[key]
	return v, ok
}

// First returns the value for the first candidate key present in the map,
// along with the key that matched.
func (fm *FieldMap) First(keys ...string) (value, matched string, ok bool) {
	for _, k := range keys {
		if v, found := fm.values[k]; found {
			return v, k, true
		}
	}
	return "", "", false
}

// OriginalLabel returns the label text as detected for a normalized key.
func (fm *FieldMap) OriginalLabel(key string) string {
	return fm.labels[key]
}

// Raw returns every detected field in encounter order.
func (fm *FieldMap) Raw() []RawField {
	return fm.raw
}

func (fm *FieldMap) Len() int {
	return len(fm.values)
}
