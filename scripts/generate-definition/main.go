package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-contactform/pkg/formdef"
)

func main() {
	var (
		schemaPath  = flag.String("schema", "pkg/formdef/testdata/openapi.yaml", "OpenAPI document path")
		operationID = flag.String("operation", "createConsultation", "operation ID to derive the form from")
		outputPath  = flag.String("output", "", "output path for the YAML definition (stdout if empty)")
	)
	flag.Parse()

	raw, err := os.ReadFile(*schemaPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read schema: %v\n", err)
		os.Exit(1)
	}

	def, err := formdef.FromOpenAPI(context.Background(), raw, *operationID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to derive definition: %v\n", err)
		os.Exit(1)
	}

	payload, err := yaml.Marshal(def)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode definition: %v\n", err)
		os.Exit(1)
	}

	if *outputPath == "" {
		os.Stdout.Write(payload)
		return
	}
	if err := os.MkdirAll(filepath.Dir(*outputPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create output dir: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outputPath, payload, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write definition: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("definition written to %s\n", *outputPath)
}
