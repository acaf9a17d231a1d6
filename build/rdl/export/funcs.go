package export

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"

	"google.com/regmap/build/rdl/model"
)

// funcs are available to the built-in templates and to user templates.
var funcs = map[string]any{
	"to_camel_case":       strcase.ToLowerCamel,
	"to_upper_camel_case": strcase.ToCamel,
	"to_snake_case":       strcase.ToSnake,
	"upper":               strings.ToUpper,
	"lower":               strings.ToLower,
	"hex":                 hex,
	"field_ident":         fieldIdent,
}

func hex(v uint64) string {
	return fmt.Sprintf("%x", v)
}

// fieldIdent names a field as a BSV struct member. Reserved fields become
// zerosN, N being their low bit.
func fieldIdent(f *model.Field) string {
	if f.IsReserved() {
		return fmt.Sprintf("zeros%d", f.Low)
	}
	return strcase.ToLowerCamel(f.Name)
}
