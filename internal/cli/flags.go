package cli

import "flag"

// ServeFlags holds the CLI flags for the serve command.
type ServeFlags struct {
	Port       int
	ConfigPath string
	Verbose    bool
}

// ParseServeFlags parses command line flags for the serve command.
func ParseServeFlags() *ServeFlags {
	flags := &ServeFlags{}
	flag.IntVar(&flags.Port, "port", 0, "Port to listen on (overrides config)")
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "Path to config file")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}

// ReconcileFlags holds the CLI flags for the offline reconcile command.
type ReconcileFlags struct {
	InvoicePath  string
	ContractPath string
	Threshold    int
	VariancePct  float64
	Verbose      bool
}

// ParseReconcileFlags parses command line flags for the reconcile command.
func ParseReconcileFlags() *ReconcileFlags {
	flags := &ReconcileFlags{}
	flag.StringVar(&flags.InvoicePath, "invoice", "", "Path to invoice JSON file")
	flag.StringVar(&flags.ContractPath, "contract", "", "Path to contract JSON file")
	flag.IntVar(&flags.Threshold, "threshold", 85, "Fuzzy match threshold (0-100)")
	flag.Float64Var(&flags.VariancePct, "variance", 2.0, "Allowed unit price variance percent")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}
