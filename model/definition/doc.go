// Package definition holds the declarative catalogue of approval workflows:
// per request type the ordered stage list, the role entitled to act at each
// stage, the originating and deleting roles, and the business field schema
// used for validation and field-level write masks.
//
// The four built-in definitions reproduce the organization's observed
// policies; deployments may replace or extend them via a Registry loaded
// from YAML.
package definition
