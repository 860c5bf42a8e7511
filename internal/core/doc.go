// Package core provides the analysis pipeline for the salaries dataset.
//
// This package contains all domain logic independent of any UI or transport
// layer. The CLI report, the web server and tests all drive it the same way.
//
// # Pipeline
//
//  1. [LoadFile] reads a semicolon-delimited file into a [RawTable]. Headers
//     and every field are validated against schema.SalaryFieldSpecs; the first
//     problem aborts the load.
//  2. [Clean] decodes coded columns, derives the ISO alpha-3 residence and
//     groups rare residences into a sentinel bucket, producing a [CleanTable].
//  3. [Aggregate] groups a cleaned table by a [Dimension] and reduces a
//     [Measure] with a [Stat]. [OrderBy] applies display order afterwards.
//  4. [CompareCohorts] tests whether fully remote employees of large
//     companies earn more than those of small companies.
//
// [Service.Run] chains the stages and returns a [Report].
//
// # View Registry
//
// Named views are registered at init time using [RegisterView]:
//
//	core.RegisterView(core.ViewDefinition{
//	    Info:  core.ViewInfo{Key: "salary_by_year", Group: "Salary", Label: "Salary by year"},
//	    Build: func(t *core.CleanTable) ([]core.Group, error) {
//	        return core.Aggregate(t, core.DimWorkYear, core.MeasureSalaryUSD, core.StatMean)
//	    },
//	})
//
// The views subpackage registers the standard set.
//
// # Error Handling
//
// Data problems are [*DataError] values matched with errors.Is against
// [ErrMalformedInput], [ErrUnknownCategory], [ErrUnknownCountry],
// [ErrInsufficientData] and [ErrDivisionByZero]. [MapError] turns any error
// into a [UserMessage] with a stable code.
package core
