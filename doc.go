package flatfiles

// Package flatfiles reads flat files (fixed-width and delimited) into
// sequences of typed field values according to a user-declared schema.
//
// - FixedLengthSchema/Window describe column order, widths, alignment, and fill
// - FixedLengthReader is a forward-only cursor with header handling, two
//   filter stages, and a sticky error policy
// - SeparatedReader is the delimited counterpart sharing the same policy
// - A stable error model via Issues (column, code, message) and RecordError
//
// Design policy:
// - Keep only public APIs in the root package; put stream scanning under internal/.
// - Place schema-document loading under schemadef/ and the CLI under cmd/flatfiles.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	schema := flatfiles.NewFixedLengthSchema().
//		AddColumn(flatfiles.StringColumn("name"), flatfiles.Window{Width: 10}).
//		AddColumn(flatfiles.IntColumn("age"), flatfiles.Window{Width: 3})
//	r, err := flatfiles.NewFixedLengthReader(flatfiles.NewLineSource(f), schema)
//	for {
//		ok, err := r.Read()
//		// ...
//		values, err := r.Values()
//	}
