package export

import (
	htmltemplate "html/template"
	"text/template"
)

var (
	// The BSV register package.
	bsvTpl = template.Must(template.New("bsv").Funcs(funcs).Parse(
		`// GENERATED FILE, DO NOT EDIT
// Register definitions for "{{.MapName}}".

package {{.PackageName}};
{{- range .Registers}}
{{- $r := .}}
{{- $name := to_upper_camel_case (.DisplayName $.FlattenNames)}}
{{- $lname := to_camel_case (.DisplayName $.FlattenNames)}}

// {{.PrefixedName}} at 0x{{hex .Offset}}
{{- if .RepeatedType}}, shares type {{.TypeName}}{{end}}
{{- with .Desc}}
// {{.}}
{{- end}}
Integer {{$lname}}Offset = {{.Offset}};
{{- range .PackedFields}}
Bit#({{$r.Width}}) {{$lname}}{{to_upper_camel_case .Name}}Mask = 'h{{.Mask}};
{{- end}}

typedef struct {
{{- range .Fields}}
    Bit#({{.Width}}) {{$r.FormatFieldName (field_ident .)}}; // [{{.BitSlice}}] {{.Desc}}
{{- end}}
} {{$name}} deriving (Bits, Eq, FShow);
{{- if .HasResetDefinition}}

{{$name}} {{$lname}}Reset = unpack('h{{hex .ResetValue}});
{{- end}}
{{- range .PackedFields}}
{{- if .HasEncode}}

typedef enum {
{{- range $i, $e := .Encode}}{{if $i}},{{end}}
    {{to_upper_camel_case $e.Name}} = {{$e.Value}}
{{- end}}
} {{$name}}{{to_upper_camel_case .Name}} deriving (Bits, Eq, FShow);
{{- end}}
{{- end}}
{{- end}}
{{- range .Memories}}
{{- $lname := to_camel_case (.DisplayName $.FlattenNames)}}

// {{.PrefixedName}} at 0x{{hex .Offset}}, {{.Entries}} x {{.Width}} bits
Integer {{$lname}}Offset = {{.Offset}};
Integer {{$lname}}Entries = {{.Entries}};
Integer {{$lname}}Width = {{.Width}};
{{- end}}

endpackage
`))

	// The register map documentation page.
	htmlTpl = htmltemplate.Must(htmltemplate.New("html").Funcs(funcs).Parse(
		`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.MapName}} registers</title>
<style>
table { border-collapse: collapse; margin-bottom: 1em; }
th, td { border: 1px solid #999; padding: 2px 8px; text-align: left; }
tr.reserved { color: #999; }
</style>
</head>
<body>
<h1>{{.MapName}}</h1>
<table>
<tr><th>Address</th><th>Name</th><th>Kind</th></tr>
{{- range .Entries}}
<tr><td>0x{{hex .Address}}</td><td><a href="#{{.PrefixedName}}">{{.DisplayName $.FlattenNames}}</a></td><td>{{if .IsMemory}}mem{{else}}reg{{end}}</td></tr>
{{- end}}
</table>
{{- range .Registers}}
<h2 id="{{.PrefixedName}}">{{.DisplayName $.FlattenNames}} <small>0x{{hex .Offset}}</small></h2>
{{- with .Desc}}
<p>{{.}}</p>
{{- end}}
{{- if .RepeatedType}}
<p>Type <code>{{.TypeName}}</code> is shared with an earlier register.</p>
{{- end}}
<table>
<tr><th>Bits</th><th>Name</th><th>Access</th><th>Reset</th><th>Description</th></tr>
{{- range .Fields}}
{{- if .IsReserved}}
<tr class="reserved"><td>{{.BitSlice}}</td><td>{{.Name}}</td><td>-</td><td>-</td><td>{{.Desc}}</td></tr>
{{- else}}
<tr><td>{{.BitSlice}}</td><td>{{.Name}}</td><td>{{.Access}}{{with .OnRead}} {{.}}{{end}}{{with .OnWrite}} {{.}}{{end}}</td><td>{{if .HasReset}}0x{{hex .ResetValue}}{{else}}-{{end}}</td><td>{{.Desc}}
{{- if .HasEncode}}
<ul>
{{- range .Encode}}
<li>{{.Value}}: {{.Name}}</li>
{{- end}}
</ul>
{{- end}}</td></tr>
{{- end}}
{{- end}}
</table>
{{- end}}
{{- range .Memories}}
<h2 id="{{.PrefixedName}}">{{.DisplayName $.FlattenNames}} <small>0x{{hex .Offset}}</small></h2>
<p>{{.Entries}} entries of {{.Width}} bits.</p>
{{- with .Desc}}
<p>{{.}}</p>
{{- end}}
{{- end}}
</body>
</html>
`))

	// The AsciiDoc register reference.
	adocTpl = template.Must(template.New("adoc").Funcs(funcs).Parse(
		`// GENERATED FILE, DO NOT EDIT
= {{.MapName}} registers
{{- range .Registers}}

[#{{.PrefixedName}}]
== {{.DisplayName $.FlattenNames}} (0x{{hex .Offset}})
{{- with .Desc}}

{{.}}
{{- end}}
{{- if .RepeatedType}}

Type ` + "`{{.TypeName}}`" + ` is shared with an earlier register.
{{- end}}

[cols="1,2,1,1,4",options="header"]
|===
|Bits |Name |Access |Reset |Description
{{- range .Fields}}
{{- if .IsReserved}}
|{{.BitSlice}} |{{.Name}} |- |- |{{.Desc}}
{{- else}}
|{{.BitSlice}} |{{.Name}} |{{.Access}} |{{if .HasReset}}0x{{hex .ResetValue}}{{else}}-{{end}} |{{.Desc}}
{{- range .Encode}} +
{{.Value}}: {{.Name}}
{{- end}}
{{- end}}
{{- end}}
|===
{{- end}}
{{- range .Memories}}

[#{{.PrefixedName}}]
== {{.DisplayName $.FlattenNames}} (0x{{hex .Offset}})

{{.Entries}} entries of {{.Width}} bits.
{{- end}}
`))
)

// LoadTemplate parses a user supplied template file with the same functions
// the built-in templates use.
func LoadTemplate(path string) (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFiles(path)
}
