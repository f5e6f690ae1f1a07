// Package validate checks that resolved properties needed by a unit of work
// are present.
//
// Checks are declared up front and evaluated later, once the host knows
// which units will run:
//
//	reg := validate.NewRegistry()
//	reg.RequireProperty("deploy", "deployHost")
//	reg.RecommendProperty("deploy", "deployTimeout", "defaults to 30s")
//
//	// after the execution plan is final
//	err := reg.Validate(ctx, ns.Lookup, []string{"deploy"})
//
// A missing required property fails only the unit that declared it. A
// missing recommended property logs a warning and never fails.
package validate
