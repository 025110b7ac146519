// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/apex/log"
)

// schemaTag represents a discovered struct field tag used when emitting schema
// information (--schema flag).
type schemaTag struct {
	Kind     string
	Name     string
	Encoding string
}

// print renders the tag into its display form.
func (t schemaTag) print() (out string) {
	parts := []string{}
	if t.Name != "" {
		parts = append(parts, t.Name)
	}
	if t.Encoding != "" {
		parts = append(parts, t.Encoding)
	}
	return strings.Join(parts, ",")
}

// NewTag constructs a schemaTag from a raw json struct tag value and an
// optional holder prefix used to build gjson paths. Fields tagged "-" yield a
// tag with an empty Kind.
func NewTag(h string, s string) schemaTag {
	tag := schemaTag{}

	parts := strings.Split(s, ",")
	if parts[0] == "" || parts[0] == "-" {
		return tag
	}

	tag.Kind = "field"
	tag.Name = parts[0]
	if h != "" {
		tag.Name = fmt.Sprintf("%s.%s", h, parts[0])
	}

	if len(parts) > 1 {
		tag.Encoding = parts[1]
	}

	return tag
}

// maxSchemaDepth limits the depth of schema walking to prevent infinite
// recursion.
const maxSchemaDepth = 3

var textMarshaler = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()

// DumpSchema writes a sorted list of the gjson paths of the provided type to
// the provided writer. If w is nil, os.Stdout is used.
func DumpSchema(prefix string, typ reflect.Type, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintln(w,
		`Field paths available to the --query flag (gjson syntax). Paths below a
"#" segment are also the keys accepted by --filter for each record.`)
	fmt.Fprintln(w, "")

	tags := dumpSchemaWalker(prefix, typ, 0)
	if len(tags) == 0 {
		log.Debugf("No tags found for type: %s", typ.Name())
		return
	}

	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Name < tags[j].Name
	})

	for _, tag := range tags {
		fmt.Fprintln(w, tag.print())
	}
}

// dumpSchemaWalker recursively walks a struct type discovering json tags.
func dumpSchemaWalker(holder string, typ reflect.Type, depth int) []schemaTag {
	tags := make([]schemaTag, 0)

	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return tags
	}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		tagValue, ok := field.Tag.Lookup("json")
		if !ok {
			continue
		}

		tag := NewTag(holder, tagValue)
		if tag.Kind == "" {
			continue
		}

		tags = append(tags, tag)

		if depth >= maxSchemaDepth || field.Type.Implements(textMarshaler) {
			continue
		}

		switch field.Type.Kind() {
		case reflect.Struct, reflect.Ptr:
			tags = append(tags, dumpSchemaWalker(tag.Name, field.Type, depth+1)...)
		case reflect.Slice:
			tags = append(tags, dumpSchemaWalker(tag.Name+".#", field.Type.Elem(), depth+1)...)
		default:
			log.Debugf("Presumed primitive field type: %s for %v", field.Type.Kind(), tag)
		}
	}

	return tags
}
