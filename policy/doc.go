// Package policy decides, per actor and per request stage, whether an
// operation is permitted and which business fields the actor may write.
// It is the single authorization gate in front of every mutation: the
// stage-to-role map in the workflow definition is what serializes the
// approval chain, since a role loses edit rights the moment the chain
// moves past its stage.
package policy
