// Package cfgstruct binds configuration structs to pflag flag sets using
// the "help" and "default" struct tags.
package cfgstruct

import (
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
)

// Bind sets flags on the flag set that match the fields of config, which
// must be a pointer to a struct. Nested struct fields become dot separated
// flag names and camel case field names become kebab case segments. The
// "help" tag provides the usage string and the "default" tag the default
// value. Flag values are written through into the struct fields.
func Bind(flags *pflag.FlagSet, config interface{}) {
	ptr := reflect.ValueOf(config)
	if ptr.Kind() != reflect.Ptr || ptr.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("invalid config type: %T, expected pointer to struct", config))
	}
	bindStruct(flags, "", ptr.Elem())
}

func bindStruct(flags *pflag.FlagSet, prefix string, val reflect.Value) {
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name := hyphenate(field.Name)
		if prefix != "" {
			name = prefix + "." + name
		}
		fv := val.Field(i)
		if fv.Kind() == reflect.Struct {
			bindStruct(flags, name, fv)
			continue
		}
		bindField(flags, name, field.Tag.Get("help"), field.Tag.Get("default"), fv)
	}
}

func bindField(flags *pflag.FlagSet, name, help, def string, fv reflect.Value) {
	switch v := fv.Addr().Interface().(type) {
	case *time.Duration:
		flags.DurationVar(v, name, cast.ToDuration(def), help)
	case *string:
		flags.StringVar(v, name, def, help)
	case *bool:
		flags.BoolVar(v, name, cast.ToBool(def), help)
	case *int:
		flags.IntVar(v, name, cast.ToInt(def), help)
	case *int64:
		flags.Int64Var(v, name, cast.ToInt64(def), help)
	case *uint:
		flags.UintVar(v, name, cast.ToUint(def), help)
	case *uint64:
		flags.Uint64Var(v, name, cast.ToUint64(def), help)
	case *float64:
		flags.Float64Var(v, name, cast.ToFloat64(def), help)
	default:
		panic(fmt.Sprintf("unsupported config field type %s for %s", fv.Type(), name))
	}
}

// hyphenate turns CamelCase field names into kebab-case flag segments.
func hyphenate(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (!unicode.IsUpper(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
