package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/marcelsud/formie-filemaker/forms"
)

/* validate-forms - Standalone CLI tool to validate forms.yaml
 * Usage: go run cmd/validate-forms/main.go [forms.yaml]
 * Exit codes: 0 = valid, 1 = invalid
 */

func main() {
	formsFile := "forms.yaml"
	if len(os.Args) > 1 {
		formsFile = os.Args[1]
	}

	fmt.Printf("Validating forms file: %s\n", formsFile)
	fmt.Println(strings.Repeat("-", 50))

	loader := forms.NewLoader()
	if err := loader.Load(formsFile); err != nil {
		fmt.Fprintf(os.Stderr, "❌ VALIDATION FAILED\n\n")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	loaded := loader.List()
	fmt.Printf("✓ VALIDATION PASSED\n\n")
	fmt.Printf("Loaded %d form(s):\n", len(loaded))

	for i, form := range loaded {
		fmt.Printf("\n%d. Form: %s (%s)\n", i+1, form.FormID, form.Handle)
		if form.Title != "" {
			fmt.Printf("   Title:   %s\n", form.Title)
		}
		if form.Webhook != "" {
			fmt.Printf("   Webhook: %s\n", form.Webhook)
		} else {
			fmt.Printf("   Webhook: (global WEBHOOK_URL)\n")
		}
		for _, field := range form.Fields {
			fmt.Printf("   - %-20s %s\n", field.Handle, field.Type)
		}
	}

	fmt.Printf("\n✓ All forms are valid!\n")
}
