// Package writers turns converted messages into serialized output.
//
// Design:
//   • Writers own all presentation knowledge (grouping, line layout).
//   • The machine stays domain-only; session stays orchestration-only.
package writers
