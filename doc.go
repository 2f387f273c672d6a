// Package finview provides the domain logic for the finview personal-finance
// web application.
//
// The core functionalities include:
//   - Series Alignment: Combining independently fetched per-symbol intraday
//     price series into a single portfolio-value series on a unified time
//     axis, carrying last-known prices forward over gaps.
//   - Valuation Snapshots: Reducing a user's history of discount positions
//     ("FTV" fair-target-value notes) to the latest snapshot per symbol.
//   - Retirement Projection: A deterministic, year-by-year compound
//     projection of savings towards a retirement age, in exact decimal
//     arithmetic.
//   - Exact Value Types: Money, Quantity and Percent types that keep
//     calculations exact and formatting consistent.
//
// This package serves as the foundational logic for the `fvd` server binary,
// ensuring that all HTTP routes compute from a single source of truth.
package finview
