// Package yamtrack builds and writes the Yamtrack import file.
//
// A Builder turns resolved viewing records into import rows, synthesizing
// the show and season parent rows the hierarchical import format requires
// exactly once each and keeping every row in first-emission order, so a
// parent row always precedes the first row that depends on it. The writer
// serializes the finished row set as comma-delimited CSV in one atomic pass
// at the end of the run.
package yamtrack
