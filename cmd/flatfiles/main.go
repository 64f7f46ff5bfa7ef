package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	flatfiles "github.com/dariosoltani/FlatFiles"
	"github.com/dariosoltani/FlatFiles/schemadef"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "convert":
		convertCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "flatfiles CLI\n\nUsage:\n  flatfiles convert -schema def.yaml [-in data.txt]\n\nNotes:\n  - Reads records per the schema document and writes one JSON object per record to stdout.\n  - The schema document may be JSON (.json) or YAML (.yaml/.yml).")
}

func convertCmd(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	var schemaPath string
	var inPath string
	fs.StringVar(&schemaPath, "schema", "", "path to the JSON or YAML schema document")
	fs.StringVar(&inPath, "in", "", "input file (defaults to stdin)")
	_ = fs.Parse(args)
	if schemaPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	doc, err := loadDocument(schemaPath)
	if err != nil {
		fatalf("%v", err)
	}

	in := os.Stdin
	if inPath != "" {
		f, err := os.Open(inPath)
		if err != nil {
			fatalf("opening input: %v", err)
		}
		defer f.Close()
		in = f
	}

	switch doc.Format {
	case schemadef.FormatFixed:
		schema, err := doc.FixedLengthSchema()
		if err != nil {
			fatalf("%v", err)
		}
		reader, err := flatfiles.NewFixedLengthReader(flatfiles.NewLineSource(in), schema, doc.FixedLengthOptions())
		if err != nil {
			fatalf("%v", err)
		}
		emit(schema.Definitions(), reader.Read, reader.Values)
	case schemadef.FormatSeparated:
		schema, err := doc.SeparatedSchema()
		if err != nil {
			fatalf("%v", err)
		}
		reader, err := flatfiles.NewSeparatedReader(in, schema, doc.SeparatedOptions())
		if err != nil {
			fatalf("%v", err)
		}
		emit(schema.Definitions(), reader.Read, reader.Values)
	}
}

func loadDocument(path string) (*schemadef.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return schemadef.ParseYAML(data)
	default:
		return schemadef.ParseJSON(data)
	}
}

func emit(defs []flatfiles.ColumnDefinition, read func() (bool, error), values func() ([]any, error)) {
	enc := json.NewEncoder(os.Stdout)
	for {
		ok, err := read()
		if err != nil {
			fatalf("%v", err)
		}
		if !ok {
			return
		}
		vals, err := values()
		if err != nil {
			fatalf("%v", err)
		}
		row := make(map[string]any, len(defs))
		for i, def := range defs {
			row[def.Name()] = vals[i]
		}
		if err := enc.Encode(row); err != nil {
			fatalf("writing output: %v", err)
		}
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
