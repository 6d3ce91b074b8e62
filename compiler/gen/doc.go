// Package gen turns loaded record descriptors into generated selection
// packages.
//
// The pipeline has three stages:
//
//	load.Record (per-record descriptor from the loader)
//	        |
//	   Graph / Type / Field (validated codegen model)
//	        |
//	   MinimalDialect (jennifer-based emitters)
//	        |
//	   Writer (all-or-nothing write to Config.Target)
//
// NewGraph validates the descriptors and resolves each field to its
// backing column; Field positions preserve the struct declaration order,
// and every downstream artifact (the Columns slice, the selection
// expression, row scanning) follows that order.
//
// The package itself is dialect-agnostic: it renders whatever files the
// configured MinimalDialect produces. The SQL dialect lives in the gen/sql
// subpackage and is the default entry point via sql.Generate.
//
// Configuration is done with functional options:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithPackage("github.com/example/app/model"),
//	    gen.WithTarget("./model"),
//	)
package gen
