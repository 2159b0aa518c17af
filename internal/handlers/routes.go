package handlers

import "net/http"

// RegisterRoutes wires HTTP handlers into the provided ServeMux.
func RegisterRoutes(mux *http.ServeMux, deps Dependencies) {
	health := HealthHandler{}
	submissions := SubmissionHandler{Submissions: deps.Submissions}
	admin := AdminHandler{
		Submissions:  deps.Submissions,
		Tokens:       deps.Tokens,
		Guard:        deps.Guard,
		Password:     deps.AdminPassword,
		PasswordHash: deps.AdminPasswordHash,
	}

	mux.HandleFunc("/healthz", health.Handle)
	mux.HandleFunc("/api/v1/submissions", submissions.Submit)
	mux.HandleFunc("/api/v1/feed", submissions.Feed)
	mux.HandleFunc("/api/v1/admin/login", admin.Login)
	mux.HandleFunc("/api/v1/admin/logout", admin.Logout)
	mux.HandleFunc("/api/v1/admin/me", admin.Me)
	mux.HandleFunc("/api/v1/admin/submissions", admin.List)
	mux.HandleFunc("/api/v1/admin/approve", admin.Approve)
	mux.HandleFunc("/api/v1/admin/reject", admin.Reject)
}

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Submissions SubmissionService
	Tokens      SessionIssuer
	Guard       Authorizer

	AdminPassword     string
	AdminPasswordHash string
}
