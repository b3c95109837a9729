// Package reqflow provides a role-gated approval workflow engine for
// organizational requests (events, financial requests, recruitments,
// tasks).
//
// Each request type moves through an ordered sequence of approval stages.
// A save is gated by the access policy evaluator, advanced exactly one
// stage by the transition engine (or moved to rejected on an explicit
// veto), and persisted through a pluggable storage DAO.  The four built-in
// workflows are instances of one generic engine parameterized by a
// declarative stage-to-role table.
//
// End-users typically interact with the engine via the high-level Service
// façade exposed by the root package:
//
//	srv, err := reqflow.New()
//	if err != nil { ... }
//	srv.Members().Grant("mia", model.RoleServiceManager)
//	req, _ := srv.Create(ctx, model.TypeTask, &model.Actor{ID: "mia"}, fields)
//	req, _ = srv.Update(ctx, model.TypeTask, req.ID, assignee, nil, model.DecisionApprove)
//
// For more details see the README and individual sub-packages.
package reqflow
