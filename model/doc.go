// Package model defines the core domain entities of the approval engine:
// request envelopes, workflow stages, actions, actors and roles.  The
// package is dependency free so that every service layer can share the
// same vocabulary without import cycles.
package model
