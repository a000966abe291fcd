// Package rangecov merges code-coverage reports collected from independent
// executions of the same instrumented program (for example, several
// worker processes running the same Node.js/V8 module) into a single
// equivalent report.
//
// Coverage is encoded as a forest of half-open byte-offset intervals, each
// carrying a hit count, nested by containment within a single report. Across
// reports the same function's intervals may partially overlap rather than
// simply nest, so merging has to split intervals at every boundary where
// nesting changes, sum counts on the coinciding regions, and re-canonicalize
// the result so that adjacent siblings with equal counts fuse back together
// and redundant single-child wrappers collapse.
//
// The three entry points mirror the shape of a V8 inspector coverage
// report: MergeFunctions combines FunctionCov values that share a root
// range, MergeScripts combines ScriptCov values that share a URL, and
// MergeProcesses groups scripts across processes by URL and renumbers
// script IDs in URL order.
package rangecov
