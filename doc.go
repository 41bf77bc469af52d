// Package textual loads typed values from text.
//
// A [Parser] is a registry of string converters, indexed by [reflect.Type]. It converts a
// string into the first type of a [hint.Spec] that accepts it:
//
//	parser := textual.NewParser(nil)
//	value, err := parser.Parse(textual.Text("12"), hint.Union{reflect.TypeFor[int](), reflect.TypeFor[string]()})
//
// Converters for bool, string, the sized integer and float types are built in. Types
// implementing [encoding.TextUnmarshaler] and named primitive types are discovered on first
// use, everything else is registered with [Parser.SetConverter].
//
// A [Loader] reads delimited text from a [Source] and yields one value per row, either as
// map ([Loader.Maps], [Loader.Values]), as struct ([Records]) or by passing a parameter struct
// to a constructor function ([Construct]). Rows are produced lazily as [iter.Seq2]:
//
//	loader := textual.NewLoader(parser).WithNameStyle(naming.SnakeCase)
//	for record, err := range textual.Records[Measurement](loader, textual.Path("data.csv")) {
//		...
//	}
//
// [LoadJSON5] and [UnmarshalJSON5] decode JSON documents that contain comments and trailing
// commas.
package textual
