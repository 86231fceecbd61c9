// Package brain provides the default core.Brain implementation and the node
// kinds a decision graph is assembled from: stateless producers, stateful
// list-iterating producers, and two-tier cached sub-computations. Graph
// authoring and visual editing are out of scope; brains here are built
// directly in code from capability-typed nodes.
package brain
