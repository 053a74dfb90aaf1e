// Command jsonish coerces a JSON-ish input file against a JSON Schema
// document and prints the coerced payload as JSON.
package main

import (
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/kaptinlin/jsonish"
	"github.com/kaptinlin/jsonish/schemahost"
)

func main() {
	var (
		schemaPath   = flag.String("schema", "", "path to a JSON or YAML schema document (required)")
		inputPath    = flag.String("input", "", "path to the input text (default: stdin)")
		allowPartial = flag.Bool("allow-partial", false, "best-effort coerce a truncated/streamed input")
		maxDepth     = flag.Int("max-depth", 100, "recursion depth bound")
		verbose      = flag.Bool("verbose", false, "log the options used before parsing")
	)
	flag.Parse()

	if *schemaPath == "" {
		log.Fatal("jsonish: -schema is required")
	}

	schemaBytes, err := os.ReadFile(*schemaPath)
	if err != nil {
		log.Fatalf("jsonish: reading schema: %v", err)
	}
	schemaBytes, err = normalizeToJSON(*schemaPath, schemaBytes)
	if err != nil {
		log.Fatalf("jsonish: decoding schema: %v", err)
	}

	compiled, err := schemahost.NewCompiler().Compile(schemaBytes)
	if err != nil {
		log.Fatalf("jsonish: compiling schema: %v", err)
	}

	var inputBytes []byte
	if *inputPath == "" {
		inputBytes, err = io.ReadAll(os.Stdin)
	} else {
		inputBytes, err = os.ReadFile(*inputPath)
	}
	if err != nil {
		log.Fatalf("jsonish: reading input: %v", err)
	}

	opts := []jsonish.Option{
		jsonish.WithAllowPartial(*allowPartial),
		jsonish.WithMaxDepth(*maxDepth),
	}
	if *verbose {
		log.Printf("jsonish: allow-partial=%v max-depth=%d schema=%s", *allowPartial, *maxDepth, *schemaPath)
	}

	payload, err := jsonish.Parse(string(inputBytes), jsonish.Wrap(compiled), opts...)
	if err != nil {
		log.Fatalf("jsonish: %v", err)
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		log.Fatalf("jsonish: encoding result: %v", err)
	}
	os.Stdout.Write(out)
	os.Stdout.Write([]byte("\n"))
}

// normalizeToJSON lets -schema name a .yaml/.yml file by converting it to
// JSON before handing it to schemahost.Compiler.Compile, which expects
// JSON Schema bytes; reuses the same YAML library schemahost.compiler.go
// already depends on for document loading.
func normalizeToJSON(path string, data []byte) ([]byte, error) {
	if !isYAMLPath(path) {
		return data, nil
	}
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func isYAMLPath(path string) bool {
	for _, suffix := range []string{".yaml", ".yml"} {
		if len(path) >= len(suffix) && path[len(path)-len(suffix):] == suffix {
			return true
		}
	}
	return false
}
