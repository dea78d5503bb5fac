package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pactproof/backend/internal/cli"
	"github.com/pactproof/backend/internal/domain/document"
	"github.com/pactproof/backend/internal/domain/reconciler"
)

func main() {
	flags := cli.ParseReconcileFlags()
	if flags.InvoicePath == "" || flags.ContractPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: reconcile -invoice <invoice.json> -contract <contract.json>")
		os.Exit(2)
	}

	invoice, err := readJSON[document.Invoice](flags.InvoicePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading invoice: %v\n", err)
		os.Exit(1)
	}

	contract, err := readJSON[document.Contract](flags.ContractPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading contract: %v\n", err)
		os.Exit(1)
	}
	contract.ApplyDefaults()

	engine := reconciler.NewEngine(reconciler.Config{
		FuzzyThreshold:     flags.Threshold,
		AllowedVariancePct: flags.VariancePct,
	})
	result := engine.Reconcile(invoice, contract)

	if flags.Verbose {
		cli.PrintHeader(invoice.InvoiceNumber, contract.ContractID)
		cli.PrintSummary(result)
		return
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(output))

	if !result.Summary.Pass {
		os.Exit(1)
	}
}

func readJSON[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &v, nil
}
