package ast

import (
	"bytes"
	"encoding"
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// MarshalJSON writes the tree with each node's side-table entry under "extra",
// placed right after the node's "loc".
func (f *File) MarshalJSON() ([]byte, error) {
	return marshalNode(f, f.Extras)
}

// MarshalJSON writes non-finite values, such as the one of 1e400, as null.
func (n *NumericLiteral) MarshalJSON() ([]byte, error) {
	return marshalNode(n, nil)
}

func marshalNode(n Node, extras *Extras) ([]byte, error) {
	w := jsonWriter{extras: extras}
	if err := w.value(reflect.ValueOf(n)); err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}

var (
	nodeType          = reflect.TypeFor[Node]()
	jsonMarshalerType = reflect.TypeFor[json.Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// ownsJSON reports types that encode themselves, such as *big.Int.
func ownsJSON(t reflect.Type) bool {
	return t.Implements(jsonMarshalerType) || t.Implements(textMarshalerType)
}

type jsonWriter struct {
	buf    bytes.Buffer
	extras *Extras
}

func (w *jsonWriter) value(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			w.buf.WriteString("null")
			return nil
		}
		return w.value(v.Elem())
	case reflect.Pointer:
		if v.IsNil() {
			w.buf.WriteString("null")
			return nil
		}
		if v.Type().Implements(nodeType) && v.Elem().Kind() == reflect.Struct {
			return w.object(v.Elem(), v.Interface().(Node))
		}
		if !ownsJSON(v.Type()) {
			return w.value(v.Elem())
		}
	case reflect.Slice:
		if v.IsNil() {
			w.buf.WriteString("null")
			return nil
		}
		w.buf.WriteByte('[')
		for i := range v.Len() {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			if err := w.value(v.Index(i)); err != nil {
				return err
			}
		}
		w.buf.WriteByte(']')
		return nil
	case reflect.Struct:
		if !ownsJSON(v.Type()) {
			return w.object(v, nil)
		}
	case reflect.Float32, reflect.Float64:
		if f := v.Float(); math.IsInf(f, 0) || math.IsNaN(f) {
			w.buf.WriteString("null")
			return nil
		}
	}
	data, err := json.Marshal(v.Interface())
	if err != nil {
		return err
	}
	w.buf.Write(data)
	return nil
}

// object writes a struct field by field; n is set when the struct is a node.
func (w *jsonWriter) object(v reflect.Value, n Node) error {
	w.buf.WriteByte('{')
	first := true
	key := func(name string) {
		if !first {
			w.buf.WriteByte(',')
		}
		first = false
		w.buf.WriteString(strconv.Quote(name))
		w.buf.WriteByte(':')
	}
	for _, f := range fieldsOf(v.Type()) {
		fv := v.FieldByIndex(f.index)
		if f.omitEmpty && isEmptyValue(fv) {
			continue
		}
		key(f.name)
		if err := w.value(fv); err != nil {
			return err
		}
		if n == nil || f.name != "loc" {
			continue
		}
		if x := w.extras.Get(n); x != nil {
			key("extra")
			if err := w.object(reflect.ValueOf(x).Elem(), nil); err != nil {
				return err
			}
		}
	}
	w.buf.WriteByte('}')
	return nil
}

type jsonField struct {
	name      string
	index     []int
	depth     int
	omitEmpty bool
}

var fieldCache sync.Map // reflect.Type -> []jsonField

// fieldsOf lists the encoded fields of t in declaration order, with embedded
// structs flattened and shallower fields hiding deeper ones of the same name.
func fieldsOf(t reflect.Type) []jsonField {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]jsonField)
	}
	var all []jsonField
	collectFields(t, nil, 0, &all)
	shallowest := make(map[string]int, len(all))
	for _, f := range all {
		if d, ok := shallowest[f.name]; !ok || f.depth < d {
			shallowest[f.name] = f.depth
		}
	}
	fields := make([]jsonField, 0, len(all))
	seen := make(map[string]bool, len(all))
	for _, f := range all {
		if f.depth != shallowest[f.name] || seen[f.name] {
			continue
		}
		seen[f.name] = true
		fields = append(fields, f)
	}
	cached, _ := fieldCache.LoadOrStore(t, fields)
	return cached.([]jsonField)
}

func collectFields(t reflect.Type, prefix []int, depth int, out *[]jsonField) {
	for i := range t.NumField() {
		sf := t.Field(i)
		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		index := append(append([]int(nil), prefix...), i)
		if sf.Anonymous && name == "" && sf.Type.Kind() == reflect.Struct {
			collectFields(sf.Type, index, depth+1, out)
			continue
		}
		if !sf.IsExported() {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		*out = append(*out, jsonField{
			name:      name,
			index:     index,
			depth:     depth,
			omitEmpty: opts == "omitempty",
		})
	}
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}
